package dto

import "videoflow/internal/types"

type SaveProjectReq struct {
	Id              string `json:"id"`
	UserId          string `json:"user_id"`
	Title           string `json:"title" binding:"required"`
	OriginalScript  string `json:"original_script"`
	SelectedVoiceId string `json:"selected_voice_id"`
	CurrentStep     int    `json:"current_step"`
}

type ParseScriptReq struct {
	ProjectId string `json:"project_id" binding:"required"`
	Script    string `json:"script" binding:"required"`
}

type ParseScriptResData struct {
	ProjectId string        `json:"project_id"`
	Scenes    []types.Scene `json:"scenes"`
}

type RewriteScriptReq struct {
	ProjectId   string `json:"project_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
	Instruction string `json:"instruction"`
}

type RewriteScriptResData struct {
	ProjectId string `json:"project_id"`
	Script    string `json:"script"`
}

type MixSceneAudioReq struct {
	SceneId string `json:"scene_id" binding:"required"`
	VoiceId string `json:"voice_id"`
}

type MixSceneAudioResData struct {
	SceneId  string  `json:"scene_id"`
	AudioUrl string  `json:"audio_url"`
	Effect   string  `json:"effect"`
	Duration float64 `json:"duration"`
	Degraded bool    `json:"degraded"`
}

type MixAllAudioReq struct {
	ProjectId string `json:"project_id" binding:"required"`
	VoiceId   string `json:"voice_id"`
}

type MixAllAudioResData struct {
	ProjectId string                 `json:"project_id"`
	Scenes    []MixSceneAudioResData `json:"scenes"`
	Failed    []string               `json:"failed,omitempty"`
}

// MixProgress is pushed over the progress websocket while a batch runs.
type MixProgress struct {
	ProjectId string `json:"project_id"`
	SceneId   string `json:"scene_id"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Degraded  bool   `json:"degraded"`
	Error     string `json:"error,omitempty"`
}
