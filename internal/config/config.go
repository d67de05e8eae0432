package config

import (
	"time"

	"github.com/upwatch/upwatch/internal/obs"
	pg "github.com/upwatch/upwatch/internal/repository/postgres"
	rds "github.com/upwatch/upwatch/internal/repository/redis"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type Server struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
}

// Store selects the record store backend: "postgres" or "redis".
type Store struct {
	Backend string `mapstructure:"backend"`
}

type Kafka struct {
	Enable  bool     `mapstructure:"enable"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Quota struct {
	MaxChecksPerUser int `mapstructure:"max_checks_per_user"`
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func (oc *OTEL) AsOTELConfig() *obs.OTELConfig {
	return &obs.OTELConfig{
		Enable:      oc.Enable,
		Endpoint:    oc.OTLPEndpoint,
		ServiceName: oc.ServiceName,
		SampleRatio: oc.SampleRatio,
	}
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	App    App        `mapstructure:"app"`
	Server Server     `mapstructure:"server"`
	Store  Store      `mapstructure:"store"`
	DB     pg.Config  `mapstructure:"db"`
	Redis  rds.Config `mapstructure:"redis"`
	Kafka  Kafka      `mapstructure:"kafka"`
	Quota  Quota      `mapstructure:"quota"`
	OTEL   OTEL       `mapstructure:"otel"`
	Log    Log        `mapstructure:"log"`
}
