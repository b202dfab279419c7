package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config contém as configurações do painel lidas do ambiente
type Config struct {
	Port         string
	DatabasePath string

	LogLevel  string
	LogFormat string

	SessionKey   []byte
	CSRFKey      []byte
	CookieSecure bool

	DSersBaseURL  string
	DSersUsername string
	DSersPassword string

	ChromeRemoteURL      string
	ChromeNoSandbox      bool
	BrowserStepTimeout   time.Duration
	BrowserSearchTimeout time.Duration

	InferenceURL   string
	InferenceToken string

	RedisAddr      string
	SearchCacheTTL time.Duration

	TelegramBotToken string
	TelegramChatID   int64

	SchedulerEnabled   bool
	RateLimitPerMinute int

	// GeneratedKeys lista as chaves ausentes que receberam um valor aleatório
	GeneratedKeys []string
}

// Load carrega as configurações das variáveis de ambiente
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("DATABASE_PATH", "./dropshipping.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("DSERS_BASE_URL", "https://www.dsers.com")
	v.SetDefault("CHROME_NO_SANDBOX", true)
	v.SetDefault("BROWSER_STEP_TIMEOUT_SECONDS", 10)
	v.SetDefault("BROWSER_SEARCH_TIMEOUT_SECONDS", 15)
	v.SetDefault("SEARCH_CACHE_TTL_MINUTES", 30)
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)

	cfg := &Config{
		Port:             v.GetString("PORT"),
		DatabasePath:     v.GetString("DATABASE_PATH"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		CookieSecure:     v.GetBool("COOKIE_SECURE"),
		DSersBaseURL:     v.GetString("DSERS_BASE_URL"),
		DSersUsername:    v.GetString("DSERS_USERNAME"),
		DSersPassword:    v.GetString("DSERS_PASSWORD"),
		ChromeRemoteURL:  v.GetString("CHROME_REMOTE_URL"),
		ChromeNoSandbox:  v.GetBool("CHROME_NO_SANDBOX"),
		InferenceURL:     v.GetString("INFERENCE_URL"),
		InferenceToken:   v.GetString("INFERENCE_TOKEN"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		TelegramBotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
		SchedulerEnabled: v.GetBool("SCHEDULER_ENABLED"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	cfg.BrowserStepTimeout = positiveSeconds(v, "BROWSER_STEP_TIMEOUT_SECONDS", 10)
	cfg.BrowserSearchTimeout = positiveSeconds(v, "BROWSER_SEARCH_TIMEOUT_SECONDS", 15)
	cfg.SearchCacheTTL = time.Duration(positiveInt(v, "SEARCH_CACHE_TTL_MINUTES", 30)) * time.Minute
	cfg.RateLimitPerMinute = positiveInt(v, "RATE_LIMIT_PER_MINUTE", 30)

	// Chat ID é opcional; sem ele as notificações ficam desligadas
	if chatIDStr := v.GetString("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		if chatID, err := strconv.ParseInt(chatIDStr, 10, 64); err == nil {
			cfg.TelegramChatID = chatID
		}
	}

	cfg.SessionKey = cfg.keyOrRandom(v.GetString("SESSION_KEY"), "SESSION_KEY")
	cfg.CSRFKey = cfg.keyOrRandom(v.GetString("CSRF_KEY"), "CSRF_KEY")

	return cfg, nil
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c *Config) Addr() string {
	return ":" + c.Port
}

// keyOrRandom decodifica uma chave base64 de pelo menos 32 bytes, ou gera uma
func (c *Config) keyOrRandom(encoded, name string) []byte {
	if encoded != "" {
		if decoded, err := base64.StdEncoding.DecodeString(encoded); err == nil && len(decoded) >= 32 {
			return decoded
		}
	}
	c.GeneratedKeys = append(c.GeneratedKeys, name)
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}

func positiveInt(v *viper.Viper, key string, def int) int {
	if n, err := strconv.Atoi(v.GetString(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func positiveSeconds(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(positiveInt(v, key, def)) * time.Second
}
