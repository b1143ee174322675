package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProfileSourceHTTP     = "http"
	ProfileSourcePostgres = "postgres"
)

type Config struct {
	App struct {
		Port    string `mapstructure:"port"`
		Env     string `mapstructure:"env"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"app"`
	Profile struct {
		Source       string `mapstructure:"source"`
		URL          string `mapstructure:"url"`
		DocumentPath string `mapstructure:"document_path"`
		EmbeddedPath string `mapstructure:"embedded_path"`
		Slug         string `mapstructure:"slug"`
	} `mapstructure:"profile"`
	GitHub struct {
		APIBase  string        `mapstructure:"api_base"`
		Host     string        `mapstructure:"host"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"github"`
	Document struct {
		TemplatePath string `mapstructure:"template_path"`
	} `mapstructure:"document"`
	Mail struct {
		Subject  string `mapstructure:"subject"`
		Greeting string `mapstructure:"greeting"`
	} `mapstructure:"mail"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("profile.source", ProfileSourceHTTP)
	v.SetDefault("profile.url", "http://localhost:8080/data/cv.json")
	v.SetDefault("profile.slug", "main")
	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.host", "github.com")
	v.SetDefault("github.cache_ttl", 24*time.Hour)
	v.SetDefault("mail.subject", "Hello Rediet")
	v.SetDefault("mail.greeting", "Hi Rediet,\r\n\r\n")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
}

// LoadConfig reads config.yaml from path (if any), then .env, then the
// environment. Later sources win.
func LoadConfig(path string) (cfg Config, err error) {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.base_url", "APP_BASE_URL")
	v.BindEnv("profile.source", "PROFILE_SOURCE")
	v.BindEnv("profile.url", "PROFILE_URL")
	v.BindEnv("profile.embedded_path", "PROFILE_EMBEDDED_PATH")
	v.BindEnv("profile.document_path", "PROFILE_DOCUMENT_PATH")
	v.BindEnv("profile.slug", "PROFILE_SLUG")
	v.BindEnv("github.api_base", "GITHUB_API_BASE")
	v.BindEnv("github.host", "GITHUB_HOST")
	v.BindEnv("github.cache_ttl", "GITHUB_CACHE_TTL")
	v.BindEnv("document.template_path", "DOCUMENT_TEMPLATE_PATH")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}
