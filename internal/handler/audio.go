package handler

import (
	"github.com/gin-gonic/gin"

	"videoflow/internal/dto"
	"videoflow/internal/queue"
	"videoflow/internal/response"
	"videoflow/internal/taskrunner"
	apperrors "videoflow/pkg/errors"
	"videoflow/pkg/tts"
)

func (h *Handler) MixSceneAudio(c *gin.Context) {
	var req dto.MixSceneAudioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	svc, _ := h.stack()

	data, err := svc.MixSceneAudio(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

// GenerateAllAudio queues the batch; progress streams over the
// websocket at /api/progress. The job goes to redis when a queue is
// configured, otherwise to the in-memory runner.
func (h *Handler) GenerateAllAudio(c *gin.Context) {
	var req dto.MixAllAudioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	_, runner := h.stack()

	var err error
	if h.Queue != nil {
		err = h.Queue.EnqueueMixAllTask(queue.MixAllPayload{
			ProjectID: req.ProjectId,
			VoiceID:   req.VoiceId,
		})
	} else {
		err = runner.SubmitMixAllTask(taskrunner.MixAllPayload{
			ProjectID: req.ProjectId,
			VoiceID:   req.VoiceId,
		})
	}
	if err != nil {
		response.Error(c, -1, err.Error())
		return
	}
	response.Success(c, gin.H{"project_id": req.ProjectId, "queued": true})
}

func (h *Handler) ListVoices(c *gin.Context) {
	response.Success(c, gin.H{"voices": tts.Voices()})
}

// ResolveVoice checks a requested voice id, suggesting the closest
// catalog entry when it does not match exactly.
func (h *Handler) ResolveVoice(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, -1, "id is required")
		return
	}

	if voice, ok := tts.ResolveVoice(id); ok {
		response.Success(c, gin.H{"voice": voice, "exact": true})
		return
	}

	suggestion, distance := tts.SuggestVoice(id)
	response.Success(c, gin.H{"voice": suggestion, "exact": false, "distance": distance})
}
