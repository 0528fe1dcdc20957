package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Tavus       Tavus       `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	MetricsSync MetricsSync `mapstructure:",squash"`
	Cron        Cron        `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL     string `mapstructure:"meta_base_url"`
	URL         string `mapstructure:"-"`
	Version     string `mapstructure:"meta_version"`
	AppID       string `mapstructure:"meta_app_id"`
	AppSecret   string `mapstructure:"meta_app_secret"`
	RedirectURI string `mapstructure:"meta_redirect_uri"`
	// Timeout e política de retry das chamadas à API Graph
	RequestTimeoutSeconds int `mapstructure:"meta_request_timeout_seconds"`
	MaxRetries            int `mapstructure:"meta_max_retries"`
	MaxPages              int `mapstructure:"meta_max_pages"`
}

type Tavus struct {
	URL    string `mapstructure:"tavus_url"`
	APIKey string `mapstructure:"tavus_api_key"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type MetricsSync struct {
	CronSchedule      string `mapstructure:"metrics_sync_cron"`
	LookbackDays      int    `mapstructure:"metrics_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"metrics_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"metrics_sync_enabled"`
}

type Cron struct {
	// Segredo compartilhado exigido pelo gatilho externo de sincronização
	Secret string `mapstructure:"cron_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketing?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URI", "http://localhost:3000/api/meta/callback")
	viper.SetDefault("META_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_MAX_RETRIES", 3)
	viper.SetDefault("META_MAX_PAGES", 25)

	viper.SetDefault("TAVUS_URL", "https://tavusapi.com/v2")
	viper.SetDefault("TAVUS_API_KEY", "")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("CRON_SECRET", "")

	viper.SetDefault("METRICS_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("METRICS_SYNC_LOOKBACK_DAYS", 30)
	viper.SetDefault("METRICS_SYNC_MAX_CONCURRENT_JOBS", 5)
	viper.SetDefault("METRICS_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile tenta carregar o arquivo .env das localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
