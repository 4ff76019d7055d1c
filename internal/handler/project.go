package handler

import (
	"errors"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"videoflow/internal/appdirs"
	"videoflow/internal/dto"
	"videoflow/internal/response"
	"videoflow/internal/storage"
	"videoflow/internal/types"
	"videoflow/log"
	apperrors "videoflow/pkg/errors"
)

func (h *Handler) SaveProject(c *gin.Context) {
	var req dto.SaveProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	project := &types.Project{
		Id:              req.Id,
		UserId:          req.UserId,
		Title:           req.Title,
		Status:          types.ProjectStatusDraft,
		OriginalScript:  req.OriginalScript,
		SelectedVoiceId: req.SelectedVoiceId,
		CurrentStep:     req.CurrentStep,
	}
	if project.Id == "" {
		project.Id = "proj-" + uuid.NewString()
	} else if existing, err := storage.GetProject(project.Id); err == nil {
		// Preserve fields the save payload does not carry.
		project.Status = existing.Status
		project.GeneratedScript = existing.GeneratedScript
		project.Scenes = existing.Scenes
	}

	if err := storage.SaveProject(project); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to save project", err))
		return
	}
	response.Success(c, project)
}

func (h *Handler) GetProject(c *gin.Context) {
	projectId := c.Param("projectId")
	if projectId == "" {
		response.Error(c, -1, "projectId is required")
		return
	}

	project, err := storage.GetProject(projectId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorResponse(c, apperrors.New(apperrors.CodeFileNotFound, "Project not found"))
			return
		}
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to load project", err))
		return
	}
	response.Success(c, project)
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := storage.ListProjects(200)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to list projects", err))
		return
	}
	response.Success(c, projects)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	projectId := c.Param("projectId")
	if projectId == "" {
		response.Error(c, -1, "projectId is required")
		return
	}

	// Remove generated artifacts from disk first; a failure here still
	// lets the database row go away.
	if dirs, err := appDirsResolver(); err == nil {
		projectDir := appdirs.ProjectDirFor(dirs, projectId)
		if err := os.RemoveAll(projectDir); err != nil {
			log.GetLogger().Error("DeleteProject RemoveAll err",
				zap.String("path", projectDir), zap.Error(err))
		}
	}

	if err := storage.DeleteProject(projectId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "Failed to delete project", err))
		return
	}
	response.Success(c, gin.H{"deleted": projectId})
}
