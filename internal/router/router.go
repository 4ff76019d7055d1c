package router

import (
	"net/http"
	"os"

	"videoflow/internal/handler"
	"videoflow/log"

	"github.com/gin-gonic/gin"
)

func SetupRouter(r *gin.Engine) {
	api := r.Group("/api")

	hdl := handler.NewHandler()
	{
		api.POST("/project", hdl.SaveProject)
		api.GET("/project/:projectId", hdl.GetProject)
		api.GET("/projects", hdl.ListProjects)
		api.DELETE("/project/:projectId", hdl.DeleteProject)

		api.POST("/script/parse", hdl.ParseScript)
		api.POST("/script/rewrite", hdl.RewriteScript)

		api.POST("/audio/scene", hdl.MixSceneAudio)
		api.POST("/audio/batch", hdl.GenerateAllAudio)
		api.GET("/voices", hdl.ListVoices)
		api.GET("/voices/resolve", hdl.ResolveVoice)

		api.GET("/progress", hdl.Progress)

		api.POST("/file", hdl.UploadFile)
		api.GET("/file/*filepath", hdl.DownloadFile)
		api.HEAD("/file/*filepath", hdl.DownloadFile)

		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/static")
	})
	if _, err := os.Stat("static"); err == nil {
		log.GetLogger().Info("Using local static directory")
		r.Static("/static", "static")
	}
}
