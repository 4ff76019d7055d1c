package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"videoflow/internal/response"
)

func (h *Handler) UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, -1, "Failed to read upload")
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		response.Error(c, -1, "No file uploaded")
		return
	}

	uploadRoot := preferredUploadRoot()
	if err := os.MkdirAll(uploadRoot, 0o755); err != nil {
		response.Error(c, -1, "Failed to create upload directory")
		return
	}

	var savedFiles []string
	for _, file := range files {
		savePath := filepath.Join(uploadRoot, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			response.Error(c, -1, "Failed to save file: "+file.Filename)
			return
		}
		savedFiles = append(savedFiles, "local:"+savePath)
	}

	response.Success(c, gin.H{"file_path": savedFiles})
}

func (h *Handler) DownloadFile(c *gin.Context) {
	requestedFile := c.Param("filepath")
	if requestedFile == "" {
		response.Error(c, -1, "File path is empty")
		return
	}

	localFilePath, ok := resolveDownloadPath(requestedFile)
	if !ok {
		c.JSON(404, response.Response{Error: -1, Msg: "File not found"})
		return
	}
	if info, err := os.Stat(localFilePath); err != nil || info.IsDir() {
		c.JSON(404, response.Response{Error: -1, Msg: "File not found"})
		return
	}

	c.FileAttachment(localFilePath, filepath.Base(localFilePath))
}
