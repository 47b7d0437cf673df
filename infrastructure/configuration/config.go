package configuration

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"youtube-manager/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App        App        `json:"app" mapstructure:"app"`
	YouTube    YouTube    `json:"youtube" mapstructure:"youtube"`
	Pubsub     Pubsub     `json:"pubsub" mapstructure:"pubsub"`
	ServiceBus ServiceBus `json:"serviceBus" mapstructure:"serviceBus"`
	Logger     Logger     `json:"logger" mapstructure:"logger"`
}

type App struct {
	Port           int      `json:"port" mapstructure:"port"`
	AllowedOrigins []string `json:"allowedOrigins" mapstructure:"allowedOrigins"`
}

// YouTube holds the OAuth client registration and the one video this
// service manages.
type YouTube struct {
	ClientID     string `json:"clientId" mapstructure:"clientId"`
	ClientSecret string `json:"clientSecret" mapstructure:"clientSecret"`
	RedirectURI  string `json:"redirectURI" mapstructure:"redirectURI"`
	VideoID      string `json:"videoIdToManage" mapstructure:"videoIdToManage"`
}

// Pubsub is optional; an empty ProjectID disables update events.
type Pubsub struct {
	ProjectID string `json:"projectID" mapstructure:"projectID"`
	Topic     string `json:"topic" mapstructure:"topic"`
}

// ServiceBus is optional; an empty Namespace disables the queue sink.
type ServiceBus struct {
	Namespace string `json:"namespace" mapstructure:"namespace"`
	Queue     string `json:"queue" mapstructure:"queue"`
}

type Logger struct {
	Format string `json:"format" mapstructure:"format"`
}

const (
	defaultPort  = 10001
	defaultTopic = "youtube-video-updated"
	defaultQueue = "youtube-video-updated"
)

var envBindings = map[string][]string{
	"app.port":                {"APP_PORT", "PORT"},
	"app.allowedOrigins":      {"CORS_ALLOWED_ORIGINS"},
	"youtube.clientId":        {"YOUTUBE_CLIENT_ID"},
	"youtube.clientSecret":    {"YOUTUBE_CLIENT_SECRET"},
	"youtube.redirectURI":     {"YOUTUBE_REDIRECT_URI"},
	"youtube.videoIdToManage": {"YOUTUBE_VIDEO_ID_TO_MANAGE"},
	"pubsub.projectID":        {"PUBSUB_PROJECT_ID"},
	"pubsub.topic":            {"PUBSUB_TOPIC"},
	"serviceBus.namespace":    {"SERVICEBUS_NAMESPACE"},
	"serviceBus.queue":        {"SERVICEBUS_QUEUE"},
	"logger.format":           {"LOG_FORMAT"},
}

// Load reads config.json (or config-$ENV.json) from the working directory
// or its parents, then applies environment overrides.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = []string{".", "../", "../../"}
	}

	v := viper.New()
	name := getConfig()
	v.SetConfigName(name)
	v.SetConfigType("json")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetDefault("app.port", defaultPort)
	v.SetDefault("app.allowedOrigins", []string{"*"})
	v.SetDefault("pubsub.topic", defaultTopic)
	v.SetDefault("serviceBus.queue", defaultQueue)
	v.SetDefault("logger.format", "json")
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", name, err)
		}
		logger.GetLogger().WithField("config", name).Warn("Config file not found, using environment only")
	} else {
		logger.GetLogger().WithField("config", v.ConfigFileUsed()).Info("Config set up successfully")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.App.AllowedOrigins = trimAll(cfg.App.AllowedOrigins)
	return &cfg, nil
}

// Validate reports every missing OAuth client setting at once. A missing
// video id is allowed here and surfaces per request instead.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.YouTube.ClientID) == "" {
		errs = append(errs, errors.New("YOUTUBE_CLIENT_ID is not defined"))
	}
	if strings.TrimSpace(c.YouTube.ClientSecret) == "" {
		errs = append(errs, errors.New("YOUTUBE_CLIENT_SECRET is not defined"))
	}
	if strings.TrimSpace(c.YouTube.RedirectURI) == "" {
		errs = append(errs, errors.New("YOUTUBE_REDIRECT_URI is not defined"))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.App.Port))
	}
	return errors.Join(errs...)
}

// PubsubEnabled reports whether update events should be published.
func (c *Config) PubsubEnabled() bool {
	return c.Pubsub.ProjectID != ""
}

// ServiceBusEnabled reports whether update events should also go to Service Bus.
func (c *Config) ServiceBusEnabled() bool {
	return c.ServiceBus.Namespace != ""
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
