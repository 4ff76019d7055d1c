package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"videoflow/internal/dto"
	"videoflow/internal/script"
	"videoflow/internal/storage"
	"videoflow/internal/types"
	"videoflow/log"
	apperrors "videoflow/pkg/errors"
	"videoflow/pkg/util"
)

// ParseScript splits a project's script into timed scenes and persists
// them, replacing whatever scene list the project had before.
func (s Service) ParseScript(req dto.ParseScriptReq) (*dto.ParseScriptResData, error) {
	if strings.TrimSpace(req.Script) == "" {
		return nil, apperrors.New(apperrors.CodeScriptEmpty, "Script is empty")
	}

	project, err := storage.GetProject(req.ProjectId)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to load project", err)
	}

	scenes := script.ParseScenes(req.Script)
	for i := range scenes {
		scenes[i].ProjectId = project.Id
	}

	project.GeneratedScript = req.Script
	project.Scenes = scenes
	project.Status = types.ProjectStatusProcessing
	if err = storage.SaveProject(project); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "Failed to save scenes", err)
	}

	log.GetLogger().Info("ParseScript produced scenes",
		zap.String("project_id", project.Id),
		zap.Int("scene_count", len(scenes)))

	return &dto.ParseScriptResData{
		ProjectId: project.Id,
		Scenes:    scenes,
	}, nil
}

// RewriteScript asks the LLM to restructure free text into the timed
// scene format the parser understands.
func (s Service) RewriteScript(ctx context.Context, req dto.RewriteScriptReq) (*dto.RewriteScriptResData, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.New(apperrors.CodeScriptEmpty, "Script is empty")
	}

	customInstruction := "Optimize for engagement, clarity, and social media pacing."
	if req.Instruction != "" {
		customInstruction = "User Instruction: " + req.Instruction
	}

	rewritten, err := s.ChatCompleter.ChatCompletion(ctx, rewriteSystemPrompt, fmt.Sprintf(rewriteUserPromptTemplate, customInstruction, req.Text))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeRewriteFailed, "Script rewrite failed", err)
	}
	rewritten = util.StripCodeFence(rewritten)
	if rewritten == "" {
		return nil, apperrors.New(apperrors.CodeRewriteFailed, "Script rewrite returned no text")
	}

	if req.ProjectId != "" {
		if project, dbErr := storage.GetProject(req.ProjectId); dbErr == nil {
			project.GeneratedScript = rewritten
			if dbErr = storage.SaveProject(project); dbErr != nil {
				log.GetLogger().Warn("RewriteScript failed to persist script",
					zap.String("project_id", req.ProjectId), zap.Error(dbErr))
			}
		}
	}

	return &dto.RewriteScriptResData{
		ProjectId: req.ProjectId,
		Script:    rewritten,
	}, nil
}

const rewriteSystemPrompt = "You are a video script writer. Follow the requested format exactly."

const rewriteUserPromptTemplate = `Rewrite the following text into a STANDARD SCRIPT format.

%s

STRICT TIMING RULES:
1. Break into numbered scenes.
2. Each scene MUST be approximately 4, 6, or 8 seconds long.
3. For the 'Visual' field, use this PHOTOREALISTIC PROMPT FORMULA:
   "A photorealistic [shot type] of [subject], [action or expression], set in [environment]. The scene is illuminated by [lighting description], creating a [mood] atmosphere. Captured with a [camera/lens details], emphasizing [key textures and details]."

FORMAT:
Scene [Number] (00:00-00:XX): [Scene Title]
VO: "[Spoken Text]"
Visual: [Photorealistic visual description]

Original Text:
%s`
