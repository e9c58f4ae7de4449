package api

import "time"

// ServerConfig configures the status API.
type ServerConfig struct {
	Addr              string        `help:"Status API listen address; empty disables it" default:":3243" env:"JOYMUX_API_ADDR"`
	ConnectionTimeout time.Duration `help:"Idle time before an API connection is dropped" default:"30s" env:"JOYMUX_API_CONNECTION_TIMEOUT"`
}
