package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App      AppSettings      `mapstructure:"app"`
	Firebase FirebaseSettings `mapstructure:"firebase"`
	Gemini   GeminiSettings   `mapstructure:"gemini"`
	Chat     ChatSettings     `mapstructure:"chat"`
	PIN      PINSettings      `mapstructure:"pin"`
	CORS     CORSSettings     `mapstructure:"cors"`
	DevAuth  DevAuthSettings  `mapstructure:"dev_auth"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// FirebaseSettings configures the identity platform and document store clients.
type FirebaseSettings struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	ProjectID       string `mapstructure:"project_id"`
}

// GeminiSettings configures the generative-AI client.
type GeminiSettings struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ChatSettings tunes prompt assembly for the chat endpoint.
type ChatSettings struct {
	HistoryLimit      int    `mapstructure:"history_limit"`
	SystemInstruction string `mapstructure:"system_instruction"`
}

// PINSettings configures PIN hashing cost.
type PINSettings struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type CORSSettings struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DevAuthSettings back the development-only token issuer used when Firebase
// credentials are not configured outside production.
type DevAuthSettings struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("ANN")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"firebase.credentials_file",
		"firebase.project_id",
		"gemini.api_key",
		"gemini.model",
		"chat.history_limit",
		"chat.system_instruction",
		"pin.bcrypt_cost",
		"cors.allowed_origins",
		"dev_auth.secret",
		"dev_auth.token_ttl",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate enforces credential material required before the first request is
// served. Missing required configuration is a startup failure, never a
// per-request one.
func (c *AppConfig) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key is required (GEMINI_API_KEY)")
	}
	if c.IsProduction() && c.Firebase.CredentialsFile == "" {
		return fmt.Errorf("firebase credentials file is required in production (FIREBASE_CREDENTIALS_FILE)")
	}
	return nil
}

// IsProduction reports whether the service runs with the production profile.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

const defaultSystemInstruction = "You are Ann Dhan, a friendly agricultural assistant for smallholder farmers in India. " +
	"Answer questions about crops, irrigation, pests, and fertilizers in simple language. " +
	"Keep answers short and practical."

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ann-dhan")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 5001)

	v.SetDefault("firebase.credentials_file", "")
	v.SetDefault("firebase.project_id", "")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")

	v.SetDefault("chat.history_limit", 20)
	v.SetDefault("chat.system_instruction", defaultSystemInstruction)

	// 0 means the bcrypt default cost.
	v.SetDefault("pin.bcrypt_cost", 0)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("dev_auth.secret", "ann-dhan-dev-secret")
	v.SetDefault("dev_auth.token_ttl", "1h")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "ANN_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
