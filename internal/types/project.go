package types

// Project status values
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusProcessing = "processing"
	ProjectStatusCompleted  = "completed"
)

// Project is one video production, from source script to assembled scenes.
type Project struct {
	Id               string `gorm:"primaryKey;column:id" json:"id"`
	UserId           string `gorm:"column:user_id" json:"user_id"`
	Title            string `gorm:"column:title" json:"title"`
	Status           string `gorm:"column:status" json:"status"`
	OriginalVideoUrl string `gorm:"column:original_video_url" json:"original_video_url,omitempty"`
	OriginalScript   string `gorm:"column:original_script" json:"original_script,omitempty"`
	GeneratedScript  string `gorm:"column:generated_script" json:"generated_script,omitempty"`
	SelectedVoiceId  string `gorm:"column:selected_voice_id" json:"selected_voice_id,omitempty"`
	CurrentStep      int    `gorm:"column:current_step" json:"current_step"`
	CreateTime       int64  `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime       int64  `gorm:"column:update_time;autoUpdateTime" json:"update_time"`

	Scenes      []Scene      `gorm:"foreignKey:ProjectId;references:Id" json:"scenes,omitempty"`
	AudioTracks []AudioTrack `gorm:"foreignKey:ProjectId;references:Id" json:"audio_tracks,omitempty"`
}

// Scene is one timed narration+visual unit derived from a script.
// TextSegment is never empty: the parser substitutes a single space
// when no narration was extracted.
type Scene struct {
	Id           string `gorm:"primaryKey;column:id" json:"id"`
	ProjectId    string `gorm:"column:project_id;index" json:"project_id"`
	OrderIndex   int    `gorm:"column:order_index" json:"order_index"`
	TextSegment  string `gorm:"column:text_segment" json:"text_segment"`
	VisualPrompt string `gorm:"column:visual_prompt" json:"visual_prompt"`
	Duration     int    `gorm:"column:duration" json:"duration"`

	// Populated by later generation phases.
	ImageUrl      string `gorm:"column:image_url" json:"image_url,omitempty"`
	VideoUrl      string `gorm:"column:video_url" json:"video_url,omitempty"`
	AudioUrl      string `gorm:"column:audio_url" json:"audio_url,omitempty"`
	AudioDegraded bool   `gorm:"column:audio_degraded" json:"audio_degraded,omitempty"`
}

// AudioTrack is a per-language voiceover track for a whole project.
type AudioTrack struct {
	Id           string `gorm:"primaryKey;column:id" json:"id"`
	ProjectId    string `gorm:"column:project_id;index" json:"project_id"`
	LanguageCode string `gorm:"column:language_code" json:"language_code"`
	LanguageName string `gorm:"column:language_name" json:"language_name"`
	VoiceId      string `gorm:"column:voice_id" json:"voice_id"`
	FileUrl      string `gorm:"column:file_url" json:"file_url"`
	CreateTime   int64  `gorm:"column:create_time;autoCreateTime" json:"created_at"`
}

// Voice describes a selectable narration voice.
type Voice struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Provider   string `json:"provider"`
	PreviewUrl string `json:"preview_url,omitempty"`
}
