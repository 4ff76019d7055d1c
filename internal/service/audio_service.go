package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"videoflow/config"
	"videoflow/internal/dto"
	"videoflow/internal/storage"
	"videoflow/internal/types"
	"videoflow/log"
	apperrors "videoflow/pkg/errors"
)

// MixSceneAudio synthesizes and mixes one scene's narration, writes the
// WAV under the project directory and records the result on the scene.
func (s Service) MixSceneAudio(ctx context.Context, req dto.MixSceneAudioReq) (*dto.MixSceneAudioResData, error) {
	scene, err := storage.GetScene(req.SceneId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to load scene", err)
	}

	voice := req.VoiceId
	if voice == "" {
		if project, dbErr := storage.GetProject(scene.ProjectId); dbErr == nil {
			voice = project.SelectedVoiceId
		}
	}

	result, err := s.Mixer.MixSceneAudio(ctx, scene.TextSegment, scene.VisualPrompt, voice)
	if err != nil {
		return nil, err
	}

	localPath, err := resolveSceneAudioPath(scene.ProjectId, scene.Id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to resolve audio path", err)
	}
	if err = os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to create project directory", err)
	}
	if err = os.WriteFile(localPath, result.WAV, 0o644); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to write audio file", err)
	}

	audioUrl, err := resolveProjectDownloadPath(localPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to resolve audio url", err)
	}

	scene.AudioUrl = audioUrl
	scene.AudioDegraded = result.Degraded
	if err = storage.UpdateScene(scene); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to update scene", err)
	}

	log.GetLogger().Info("MixSceneAudio completed",
		zap.String("scene_id", scene.Id),
		zap.String("effect", result.Effect),
		zap.Bool("degraded", result.Degraded),
		zap.Float64("duration", result.Duration))

	return &dto.MixSceneAudioResData{
		SceneId:  scene.Id,
		AudioUrl: audioUrl,
		Effect:   result.Effect,
		Duration: result.Duration,
		Degraded: result.Degraded,
	}, nil
}

// GenerateAllAudio mixes every scene of a project. Concurrency is
// bounded by App.MixConcurrency; the default of 1 keeps the batch
// sequential so external rate limits are respected. A failing scene
// does not abort the rest of the batch.
func (s Service) GenerateAllAudio(ctx context.Context, req dto.MixAllAudioReq, progress func(dto.MixProgress)) (*dto.MixAllAudioResData, error) {
	project, err := storage.GetProject(req.ProjectId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to load project", err)
	}

	total := len(project.Scenes)
	results := make([]*dto.MixSceneAudioResData, total)
	failed := make([]string, 0)

	var mu sync.Mutex
	completed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Conf.App.MixConcurrency)

	for i, scene := range project.Scenes {
		i, scene := i, scene
		g.Go(func() error {
			data, mixErr := s.MixSceneAudio(ctx, dto.MixSceneAudioReq{
				SceneId: scene.Id,
				VoiceId: req.VoiceId,
			})

			mu.Lock()
			completed++
			event := dto.MixProgress{
				ProjectId: project.Id,
				SceneId:   scene.Id,
				Completed: completed,
				Total:     total,
			}
			if mixErr != nil {
				failed = append(failed, scene.Id)
				event.Error = mixErr.Error()
				log.GetLogger().Error("GenerateAllAudio scene failed",
					zap.String("scene_id", scene.Id), zap.Error(mixErr))
			} else {
				results[i] = data
				event.Degraded = data.Degraded
			}
			mu.Unlock()

			if progress != nil {
				progress(event)
			}
			return nil
		})
	}

	// Workers swallow per-scene errors, so this only waits.
	_ = g.Wait()

	if len(failed) == 0 {
		if err = storage.UpdateProjectStatus(project.Id, types.ProjectStatusCompleted); err != nil {
			log.GetLogger().Warn("GenerateAllAudio failed to update project status",
				zap.String("project_id", project.Id), zap.Error(err))
		}
	}

	return &dto.MixAllAudioResData{
		ProjectId: project.Id,
		Scenes: lo.FilterMap(results, func(r *dto.MixSceneAudioResData, _ int) (dto.MixSceneAudioResData, bool) {
			if r == nil {
				return dto.MixSceneAudioResData{}, false
			}
			return *r, true
		}),
		Failed: failed,
	}, nil
}
