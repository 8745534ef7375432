package config

import "time"

const (
	retryWaitMinVar = "AUTH_CLIENT_RETRY_WAIT_MIN"
	retryWaitMaxVar = "AUTH_CLIENT_RETRY_WAIT_MAX"
	timeoutVar      = "AUTH_CLIENT_TIMEOUT"
)

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetRetryWaitMin() time.Duration {
	return GetEnvDuration(retryWaitMinVar, 100*time.Millisecond)
}

func (Client) GetRetryWaitMax() time.Duration {
	return GetEnvDuration(retryWaitMaxVar, 2*time.Second)
}

// GetTimeout bounds a whole call, retries and backoff included.
func (Client) GetTimeout() time.Duration {
	return GetEnvDuration(timeoutVar, 30*time.Second)
}
