package minimax

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"videoflow/internal/types"
	"videoflow/log"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const sampleRate = 24000

// Client implements types.SpeechSynthesizer via the MiniMax T2A v2 API.
type Client struct {
	ApiKey  string
	GroupId string
	Model   string

	http *resty.Client
}

func NewClient(apiKey, groupId, model string) *Client {
	if model == "" {
		model = "speech-01-turbo"
	}
	return &Client{
		ApiKey:  apiKey,
		GroupId: groupId,
		Model:   model,
		http: resty.New().
			SetBaseURL("https://api.minimax.chat").
			SetTimeout(120 * time.Second),
	}
}

type t2aRequest struct {
	Model        string       `json:"model"`
	Text         string       `json:"text"`
	VoiceSetting voiceSetting `json:"voice_setting"`
	AudioSetting audioSetting `json:"audio_setting"`
	Stream       bool         `json:"stream"`
}

type voiceSetting struct {
	VoiceId string `json:"voice_id"`
}

type audioSetting struct {
	SampleRate int    `json:"sample_rate"`
	Format     string `json:"format"`
	Channel    int    `json:"channel"`
}

type t2aResponse struct {
	BaseResp struct {
		StatusCode int    `json:"status_code"`
		StatusMsg  string `json:"status_msg"`
	} `json:"base_resp"`
	Data struct {
		Audio  string `json:"audio"` // hex encoded
		Status int    `json:"status"`
	} `json:"data"`
}

// Synthesize implements types.SpeechSynthesizer. MiniMax has no style
// prompt channel, so the scene context is ignored here.
func (c *Client) Synthesize(ctx context.Context, text, voice, contextPrompt string) (types.SpeechResult, error) {
	if voice == "" {
		voice = "male-qn-qingse"
	}

	req := t2aRequest{
		Model: c.Model,
		Text:  text,
		VoiceSetting: voiceSetting{
			VoiceId: voice,
		},
		AudioSetting: audioSetting{
			SampleRate: sampleRate,
			Format:     "pcm",
			Channel:    1,
		},
	}

	var result t2aResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.ApiKey).
		SetQueryParam("GroupId", c.GroupId).
		SetBody(req).
		SetResult(&result).
		Post("/v1/t2a_v2")
	if err != nil {
		return types.SpeechResult{}, fmt.Errorf("minimax t2a request: %w", err)
	}
	if resp.IsError() {
		return types.SpeechResult{}, fmt.Errorf("minimax t2a status %s", resp.Status())
	}
	if result.BaseResp.StatusCode != 0 {
		return types.SpeechResult{}, fmt.Errorf("minimax t2a error %d: %s", result.BaseResp.StatusCode, result.BaseResp.StatusMsg)
	}

	pcm, err := hex.DecodeString(result.Data.Audio)
	if err != nil {
		return types.SpeechResult{}, fmt.Errorf("minimax t2a decode audio: %w", err)
	}
	if len(pcm) == 0 {
		return types.SpeechResult{}, fmt.Errorf("minimax t2a returned no audio")
	}

	log.GetLogger().Debug("minimax t2a done",
		zap.String("voice", voice),
		zap.Int("pcm_bytes", len(pcm)))

	return types.SpeechResult{PCM: pcm, SampleRate: sampleRate}, nil
}
