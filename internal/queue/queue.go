// Package queue provides background task processing using Asynq.
// It supports reliable task queueing with retry logic and persistence.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"videoflow/config"
	"videoflow/log"
)

// Task type names
const (
	TypeMixAllTask   = "audio:mix_all"
	TypeMixSceneTask = "audio:mix_scene"
)

// MixAllPayload contains the data for a whole-project audio batch
type MixAllPayload struct {
	ProjectID string `json:"project_id"`
	VoiceID   string `json:"voice_id,omitempty"`
}

// MixScenePayload contains the data for a single-scene mix
type MixScenePayload struct {
	SceneID string `json:"scene_id"`
	VoiceID string `json:"voice_id,omitempty"`
}

// QueueConfig holds Redis configuration for Asynq
type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// Queue manages task enqueueing and processing
type Queue struct {
	client *asynq.Client
	server *asynq.Server
	config QueueConfig
}

// DefaultConfig returns default queue configuration
func DefaultConfig() QueueConfig {
	return QueueConfig{
		RedisAddr:   "localhost:6379",
		RedisDB:     0,
		Concurrency: 3,
	}
}

// Enabled reports whether the app config points at a redis instance.
func Enabled() bool {
	return config.Conf.Queue.RedisAddr != ""
}

// ConfigFromApp builds the queue configuration from the loaded app
// config, falling back to defaults for unset values.
func ConfigFromApp() QueueConfig {
	cfg := DefaultConfig()
	if config.Conf.Queue.RedisAddr != "" {
		cfg.RedisAddr = config.Conf.Queue.RedisAddr
	}
	cfg.RedisPassword = config.Conf.Queue.RedisPassword
	cfg.RedisDB = config.Conf.Queue.RedisDB
	if config.Conf.Queue.Concurrency > 0 {
		cfg.Concurrency = config.Conf.Queue.Concurrency
	}
	return cfg
}

// NewQueue creates a new Queue instance
func NewQueue(cfg QueueConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// Exponential backoff: 10s, 20s, 40s, 80s, ...
				return time.Duration(10<<uint(n)) * time.Second
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.GetLogger().Error("Task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	return &Queue{
		client: client,
		server: server,
		config: cfg,
	}
}

// EnqueueMixAllTask adds a whole-project audio batch to the queue
func (q *Queue) EnqueueMixAllTask(payload MixAllPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeMixAllTask, data,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
		asynq.Queue("default"),
	)

	info, err := q.client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.GetLogger().Info("Task enqueued",
		zap.String("project_id", payload.ProjectID),
		zap.String("queue_id", info.ID),
		zap.String("queue", info.Queue))

	return nil
}

// EnqueueMixSceneTask adds a single-scene mix to the queue
func (q *Queue) EnqueueMixSceneTask(payload MixScenePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeMixSceneTask, data,
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
		asynq.Queue("default"),
	)

	info, err := q.client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.GetLogger().Info("Scene mix task enqueued",
		zap.String("scene_id", payload.SceneID),
		zap.String("queue_id", info.ID))

	return nil
}

// Close gracefully shuts down the queue
func (q *Queue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	q.server.Shutdown()
	return nil
}

// Client returns the underlying Asynq client for advanced usage
func (q *Queue) Client() *asynq.Client {
	return q.client
}

// Server returns the underlying Asynq server for advanced usage
func (q *Queue) Server() *asynq.Server {
	return q.server
}
