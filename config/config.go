package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"videoflow/internal/appdirs"

	"github.com/BurntSushi/toml"
)

type App struct {
	Proxy          string `toml:"proxy"`
	MixConcurrency int    `toml:"mix_concurrency"`
}

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type Llm struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type OpenaiTts struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type MinimaxTts struct {
	ApiKey  string `toml:"api_key"`
	GroupId string `toml:"group_id"`
	Model   string `toml:"model"`
}

type Tts struct {
	Provider string     `toml:"provider"`
	Openai   OpenaiTts  `toml:"openai"`
	Minimax  MinimaxTts `toml:"minimax"`
}

type Queue struct {
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type Config struct {
	App    App    `toml:"app"`
	Server Server `toml:"server"`
	Llm    Llm    `toml:"llm"`
	Tts    Tts    `toml:"tts"`
	Queue  Queue  `toml:"queue"`
}

var Conf Config

// resolveConfigPath is swappable in tests.
var resolveConfigPath = func() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

func ResolveConfigPath() (string, error) {
	return resolveConfigPath()
}

func defaultConfig() Config {
	return Config{
		App: App{
			MixConcurrency: 1,
		},
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Llm: Llm{
			Model: "gpt-4o-mini",
		},
		Tts: Tts{
			Provider: "openai",
			Openai: OpenaiTts{
				Model: "tts-1",
			},
		},
		Queue: Queue{
			Concurrency: 1,
		},
	}
}

// LoadOrCreateConfig reads the config file into Conf, writing a default
// file first when none exists. It reports whether a new file was created.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err := SaveConfig(); err != nil {
			return false, err
		}
		return true, nil
	}

	if _, err := toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("decode config %s: %w", configPath, err)
	}

	if err := normalizeConfig(); err != nil {
		return false, err
	}
	return false, nil
}

// SaveConfig writes Conf back to the config file, creating parent
// directories as needed.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(Conf)
}

// CheckConfig validates the parts of Conf the server cannot run without.
func CheckConfig() error {
	if strings.TrimSpace(Conf.Llm.ApiKey) == "" {
		return fmt.Errorf("llm.api_key is required")
	}

	switch Conf.Tts.Provider {
	case "", "openai":
		// The OpenAI TTS falls back to the LLM key when unset.
	case "minimax":
		if strings.TrimSpace(Conf.Tts.Minimax.ApiKey) == "" {
			return fmt.Errorf("tts.minimax.api_key is required for the minimax provider")
		}
	default:
		return fmt.Errorf("unknown tts provider %q", Conf.Tts.Provider)
	}

	return normalizeConfig()
}

func normalizeConfig() error {
	if Conf.App.Proxy != "" {
		// The provider clients parse the raw address themselves; this
		// only rejects unusable values up front.
		if _, err := url.Parse(Conf.App.Proxy); err != nil {
			return fmt.Errorf("parse app.proxy: %w", err)
		}
	}
	if Conf.App.MixConcurrency <= 0 {
		Conf.App.MixConcurrency = 1
	}
	if Conf.Queue.Concurrency <= 0 {
		Conf.Queue.Concurrency = 1
	}
	return nil
}
