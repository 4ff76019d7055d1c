package handler

import (
	"sync"
	"sync/atomic"

	"videoflow/config"
	"videoflow/internal/queue"
	"videoflow/internal/response"
	"videoflow/internal/service"
	"videoflow/internal/taskrunner"
	"videoflow/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// configUpdated flags that the service stack must be rebuilt before the
// next request that uses external clients.
var configUpdated atomic.Bool

type Handler struct {
	Hub   *ProgressHub
	Queue *queue.Queue

	// mu guards service and runner against concurrent rebuilds.
	mu      sync.Mutex
	service *service.Service
	runner  *taskrunner.Runner
}

func NewHandler() *Handler {
	svc := service.NewService()
	hub := NewProgressHub()

	runner := taskrunner.New(svc, taskrunner.DefaultConfig())
	runner.Progress = hub.Broadcast

	h := &Handler{
		Hub:     hub,
		service: svc,
		runner:  runner,
	}

	// With redis configured, batch jobs go through asynq instead of
	// the in-memory runner and survive process restarts.
	if queue.Enabled() {
		h.Queue = queue.NewQueue(queue.ConfigFromApp())
		go func() {
			if err := queue.StartWorker(h.Queue, svc, hub.Broadcast); err != nil {
				log.GetLogger().Error("queue worker stopped", zap.Error(err))
			}
		}()
	}

	return h
}

// stack returns the current service and runner, rebuilding external
// clients first if the config changed since the last request.
func (h *Handler) stack() (*service.Service, *taskrunner.Runner) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if configUpdated.CompareAndSwap(true, false) {
		log.GetLogger().Info("Config changed, reinitializing services")
		h.service = service.NewService()
		h.runner.Close()
		h.runner = taskrunner.New(h.service, taskrunner.DefaultConfig())
		h.runner.Progress = h.Hub.Broadcast
	}
	return h.service, h.runner
}

func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, config.Conf)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req config.Config
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, -1, "Invalid config payload")
		return
	}

	config.Conf = req
	if err := config.SaveConfig(); err != nil {
		log.GetLogger().Error("UpdateConfig save failed", zap.Error(err))
		response.Error(c, -1, "Failed to save config")
		return
	}

	configUpdated.Store(true)
	response.Success(c, nil)
}
