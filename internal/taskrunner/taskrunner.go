package taskrunner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"videoflow/internal/dto"
	"videoflow/internal/service"
	"videoflow/internal/storage"
	"videoflow/internal/types"
	"videoflow/log"
)

const (
	defaultQueueSize   = 128
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
)

// Config controls in-process task runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

// DefaultConfig returns a single-host friendly default config.
func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

// MixAllPayload contains batch audio generation enqueue data.
type MixAllPayload struct {
	ProjectID string `json:"project_id"`
	VoiceID   string `json:"voice_id,omitempty"`
}

// MixScenePayload contains single-scene audio mix enqueue data.
type MixScenePayload struct {
	SceneID string `json:"scene_id"`
	VoiceID string `json:"voice_id,omitempty"`
}

type queuedTaskType uint8

const (
	queuedTaskMixAll queuedTaskType = iota + 1
	queuedTaskMixScene
)

type queuedTask struct {
	taskType queuedTaskType
	mixAll   MixAllPayload
	mixScene MixScenePayload
}

// Runner executes queued tasks with in-memory workers.
type Runner struct {
	service *service.Service
	config  Config

	// Progress receives batch-mix events; nil drops them.
	Progress func(dto.MixProgress)

	queue  chan queuedTask
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(svc *service.Service, cfg Config) *Runner {
	if svc == nil {
		svc = service.NewService()
	}

	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		service: svc,
		config:  cfg,
		queue:   make(chan queuedTask, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// SubmitMixAllTask queues a whole-project audio generation job.
func (r *Runner) SubmitMixAllTask(payload MixAllPayload) error {
	if payload.ProjectID == "" {
		return errors.New("mix task project id is required")
	}

	return r.submit(queuedTask{
		taskType: queuedTaskMixAll,
		mixAll:   payload,
	}, payload.ProjectID, "mix_all")
}

// SubmitMixSceneTask queues a single-scene audio mix job.
func (r *Runner) SubmitMixSceneTask(payload MixScenePayload) error {
	if payload.SceneID == "" {
		return errors.New("mix task scene id is required")
	}

	return r.submit(queuedTask{
		taskType: queuedTaskMixScene,
		mixScene: payload,
	}, payload.SceneID, "mix_scene")
}

func (r *Runner) submit(task queuedTask, taskID, taskType string) error {
	if r.closed.Load() {
		return ErrRunnerStopped
	}

	select {
	case <-r.ctx.Done():
		return ErrRunnerStopped
	case r.queue <- task:
		log.GetLogger().Info("[TaskRunner] task submitted",
			zap.String("task_id", taskID),
			zap.String("task_type", taskType))
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case task := <-r.queue:
			r.processTask(workerID, task)
		}
	}
}

func (r *Runner) processTask(workerID int, task queuedTask) {
	var err error
	var taskID string
	var taskType string

	switch task.taskType {
	case queuedTaskMixAll:
		taskID = task.mixAll.ProjectID
		taskType = "mix_all"
		err = r.processMixAllTask(task.mixAll)
	case queuedTaskMixScene:
		taskID = task.mixScene.SceneID
		taskType = "mix_scene"
		err = r.processMixSceneTask(task.mixScene)
	default:
		err = fmt.Errorf("unsupported task type: %d", task.taskType)
	}

	if err != nil {
		log.GetLogger().Error("[TaskRunner] task failed",
			zap.Int("worker_id", workerID),
			zap.String("task_id", taskID),
			zap.String("task_type", taskType),
			zap.Error(err))
		return
	}

	log.GetLogger().Info("[TaskRunner] task completed",
		zap.Int("worker_id", workerID),
		zap.String("task_id", taskID),
		zap.String("task_type", taskType))
}

func (r *Runner) processMixAllTask(payload MixAllPayload) error {
	if r.service == nil {
		return errors.New("service not initialized")
	}

	data, err := r.service.GenerateAllAudio(r.ctx, dto.MixAllAudioReq{
		ProjectId: payload.ProjectID,
		VoiceId:   payload.VoiceID,
	}, r.Progress)
	if err != nil {
		r.markProjectFailed(payload.ProjectID)
		return err
	}
	if len(data.Failed) > 0 {
		return fmt.Errorf("batch finished with %d failed scenes", len(data.Failed))
	}

	return nil
}

func (r *Runner) processMixSceneTask(payload MixScenePayload) error {
	if r.service == nil {
		return errors.New("service not initialized")
	}

	_, err := r.service.MixSceneAudio(r.ctx, dto.MixSceneAudioReq{
		SceneId: payload.SceneID,
		VoiceId: payload.VoiceID,
	})
	return err
}

func (r *Runner) markProjectFailed(projectID string) {
	if projectID == "" {
		return
	}
	_ = storage.UpdateProjectStatus(projectID, types.ProjectStatusDraft)
}

// Close stops workers and rejects new tasks.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued tasks waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}
