package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
	MaxConns int32
}

func (c DBConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		sslMode,
	)
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	EventsDriverNone  = "none"
	EventsDriverRedis = "redis"
	EventsDriverKafka = "kafka"
)

// Config holds everything cmd/app needs at startup. Secrets come from the
// environment (.env); tunables come from app.yaml.
type Config struct {
	Env                  string
	Port                 string
	ClientOrigin         string
	AccessSecret         string
	StorageDriver        string
	EventsDriver         string
	BackupOnRejectedEdit bool
	TracingEndpoint      string
	TracingServiceName   string
	ShutdownTimeout      time.Duration
	DB                   DBConfig
	Redis                RedisConfig
	Kafka                KafkaConfig
}

func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func InitConfig() error {
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "production")
	viper.SetDefault("app.shutdown-timeout", "10s")
	viper.SetDefault("client.origin", "*")
	viper.SetDefault("storage.driver", StorageDriverPostgres)
	viper.SetDefault("storage.max-conns", 10)
	viper.SetDefault("events.driver", EventsDriverNone)
	viper.SetDefault("events.topic", "blog-events")
	viper.SetDefault("posts.backup-on-rejected-edit", false)
	viper.SetDefault("tracing.service-name", "blog-service")

	return viper.ReadInConfig()
}

// Load reads the values gathered by LoadEnv and InitConfig.
func Load() Config {
	return Config{
		Env:                  viper.GetString("app.env"),
		Port:                 viper.GetString("app.port"),
		ClientOrigin:         viper.GetString("client.origin"),
		AccessSecret:         os.Getenv("ACCESS_SECRET"),
		StorageDriver:        strings.ToLower(viper.GetString("storage.driver")),
		EventsDriver:         strings.ToLower(viper.GetString("events.driver")),
		BackupOnRejectedEdit: viper.GetBool("posts.backup-on-rejected-edit"),
		TracingEndpoint:      viper.GetString("tracing.endpoint"),
		TracingServiceName:   viper.GetString("tracing.service-name"),
		ShutdownTimeout:      viper.GetDuration("app.shutdown-timeout"),
		DB: DBConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			DBName:   os.Getenv("POSTGRES_DATABASE"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: viper.GetInt32("storage.max-conns"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   viper.GetString("events.topic"),
		},
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
