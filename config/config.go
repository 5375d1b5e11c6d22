package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the podcast generator
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Reddit    RedditConfig    `mapstructure:"reddit"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Scraper   ScraperConfig   `mapstructure:"scraper"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Daemon    DaemonConfig    `mapstructure:"daemon"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug             bool          `mapstructure:"debug"`
	LogLevel          string        `mapstructure:"log_level"`
	MaxProcessingTime time.Duration `mapstructure:"max_processing_time"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
}

// RedditConfig contains Reddit API credentials and fetch defaults
type RedditConfig struct {
	ClientID        string        `mapstructure:"client_id"`
	ClientSecret    string        `mapstructure:"client_secret"`
	UserAgent       string        `mapstructure:"user_agent"`
	FlairFilter     string        `mapstructure:"flair_filter"`
	TimeFilter      string        `mapstructure:"time_filter"`
	PostLimit       int           `mapstructure:"post_limit"`
	CommentsPerPost int           `mapstructure:"comments_per_post"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (r RedditConfig) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return fmt.Errorf("reddit.client_id is required")
	}
	if strings.TrimSpace(r.ClientSecret) == "" {
		return fmt.Errorf("reddit.client_secret is required")
	}
	if strings.TrimSpace(r.UserAgent) == "" {
		return fmt.Errorf("reddit.user_agent is required")
	}
	return nil
}

// LLMConfig contains completion provider settings
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // openai
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("llm.model is required")
	}
	return nil
}

// ScraperConfig contains web content fetching settings
type ScraperConfig struct {
	Fetcher     string `mapstructure:"fetcher"` // chromedp or http
	TimeoutMS   int    `mapstructure:"timeout_ms"`
	MaxChars    int    `mapstructure:"max_chars"`
	MaxAttempts int    `mapstructure:"max_attempts"`
}

// CacheConfig contains the optional redis content cache settings
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

func (c CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("cache.host required when cache is enabled")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("cache.port required when cache is enabled")
	}
	return nil
}

// VoiceConfig contains per-speaker synthesis parameters. Azure uses VoiceName
// and Style; ElevenLabs uses VoiceID with the stability/similarity settings.
type VoiceConfig struct {
	VoiceName       string  `mapstructure:"voice_name"`
	Style           string  `mapstructure:"style"`
	StyleDegree     float64 `mapstructure:"style_degree"`
	VoiceID         string  `mapstructure:"voice_id"`
	Stability       float64 `mapstructure:"stability"`
	SimilarityBoost float64 `mapstructure:"similarity_boost"`
}

// SpeechConfig contains TTS service settings
type SpeechConfig struct {
	Service     string                 `mapstructure:"service"` // azure or elevenlabs
	AzureKey    string                 `mapstructure:"azure_key"`
	AzureRegion string                 `mapstructure:"azure_region"`
	ElevenKey   string                 `mapstructure:"eleven_key"`
	SampleRate  int                    `mapstructure:"sample_rate"`
	OutputDir   string                 `mapstructure:"output_dir"`
	Voices      map[string]VoiceConfig `mapstructure:"voices"`
	Timeout     time.Duration          `mapstructure:"timeout"`
}

func (s SpeechConfig) Validate() error {
	switch s.Service {
	case "azure":
		if strings.TrimSpace(s.AzureKey) == "" || strings.TrimSpace(s.AzureRegion) == "" {
			return fmt.Errorf("speech.azure_key and speech.azure_region are required for the azure service")
		}
	case "elevenlabs":
		if strings.TrimSpace(s.ElevenKey) == "" {
			return fmt.Errorf("speech.eleven_key is required for the elevenlabs service")
		}
	default:
		return fmt.Errorf("speech.service must be azure or elevenlabs, got %q", s.Service)
	}
	if strings.TrimSpace(s.OutputDir) == "" {
		return fmt.Errorf("speech.output_dir is required")
	}
	return nil
}

// TelemetryConfig contains telemetry and monitoring settings
type TelemetryConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	PeriodicLogs bool `mapstructure:"periodic_logs"`
}

// DaemonConfig contains scheduled-run and ops server settings
type DaemonConfig struct {
	CronSpec string `mapstructure:"cron_spec"`
	Address  string `mapstructure:"address"`
}

// LoadConfig loads config from file, with LOOPCAST_* environment overrides
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.max_processing_time", 30*time.Minute)
	viper.SetDefault("general.max_concurrent", 4)
	viper.SetDefault("reddit.flair_filter", "Answered")
	viper.SetDefault("reddit.time_filter", "week")
	viper.SetDefault("reddit.post_limit", 10)
	viper.SetDefault("reddit.comments_per_post", 3)
	viper.SetDefault("reddit.timeout", 30*time.Second)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "gpt-4o")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.timeout", 2*time.Minute)
	viper.SetDefault("scraper.fetcher", "http")
	viper.SetDefault("scraper.timeout_ms", 15000)
	viper.SetDefault("scraper.max_chars", 20000)
	viper.SetDefault("scraper.max_attempts", 3)
	viper.SetDefault("cache.ttl", 48*time.Hour)
	viper.SetDefault("speech.service", "azure")
	viper.SetDefault("speech.sample_rate", 24000)
	viper.SetDefault("speech.output_dir", "./podcasts")
	viper.SetDefault("speech.timeout", 60*time.Second)
	viper.SetDefault("daemon.cron_spec", "0 8 * * 1")
	viper.SetDefault("daemon.address", ":10010")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("LOOPCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Reddit.Validate(); err != nil {
		panic(err)
	}
	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}
	if err := config.Cache.Validate(); err != nil {
		panic(err)
	}
	if err := config.Speech.Validate(); err != nil {
		panic(err)
	}
	return &config
}
