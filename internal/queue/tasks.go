// Package queue provides task handlers for Asynq background processing.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"videoflow/internal/dto"
	"videoflow/internal/service"
	"videoflow/log"
)

// TaskHandlers provides handlers for different task types
type TaskHandlers struct {
	service *service.Service

	// Progress receives batch-mix events; nil drops them.
	Progress func(dto.MixProgress)
}

// NewTaskHandlers creates a new TaskHandlers instance
func NewTaskHandlers(svc *service.Service) *TaskHandlers {
	return &TaskHandlers{service: svc}
}

// HandleMixAllTask processes whole-project audio batches
func (h *TaskHandlers) HandleMixAllTask(ctx context.Context, t *asynq.Task) error {
	var payload MixAllPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] Processing audio batch",
		zap.String("project_id", payload.ProjectID))

	data, err := h.service.GenerateAllAudio(ctx, dto.MixAllAudioReq{
		ProjectId: payload.ProjectID,
		VoiceId:   payload.VoiceID,
	}, h.Progress)
	if err != nil {
		return err
	}
	if len(data.Failed) > 0 {
		return fmt.Errorf("batch finished with %d failed scenes", len(data.Failed))
	}

	log.GetLogger().Info("[Queue] Audio batch completed",
		zap.String("project_id", payload.ProjectID),
		zap.Int("scene_count", len(data.Scenes)))

	return nil
}

// HandleMixSceneTask processes single-scene mixes
func (h *TaskHandlers) HandleMixSceneTask(ctx context.Context, t *asynq.Task) error {
	var payload MixScenePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] Processing scene mix",
		zap.String("scene_id", payload.SceneID))

	_, err := h.service.MixSceneAudio(ctx, dto.MixSceneAudioReq{
		SceneId: payload.SceneID,
		VoiceId: payload.VoiceID,
	})
	return err
}

// RegisterHandlers registers all task handlers with the Asynq server mux
func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeMixAllTask, h.HandleMixAllTask)
	mux.HandleFunc(TypeMixSceneTask, h.HandleMixSceneTask)
}

// StartWorker starts the Asynq worker with registered handlers
func StartWorker(q *Queue, svc *service.Service, progress func(dto.MixProgress)) error {
	handlers := NewTaskHandlers(svc)
	handlers.Progress = progress

	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] Starting worker",
		zap.String("redis_addr", q.config.RedisAddr),
		zap.Int("concurrency", q.config.Concurrency))

	return q.server.Run(mux)
}
