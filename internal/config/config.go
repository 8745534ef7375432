package config

import "time"

type Config interface {
	EnvConfig
	ClientConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

// ClientConfig holds the transport settings shared by every request a client sends.
type ClientConfig interface {
	GetRetryWaitMin() time.Duration
	GetRetryWaitMax() time.Duration
	GetTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Client
}

func New() Config {
	return mainConfig{}
}
