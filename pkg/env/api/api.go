package api

import (
	"os"
	"time"

	"github.com/luftdata/nilu/pkg/client"
	"github.com/luftdata/nilu/pkg/env"
)

// Env carries API access settings for the nilu binaries. The library
// itself reads no environment; these values only feed the CLI.
type Env struct {
	BaseURL string
	Timeout time.Duration
}

func NewAPIEnv() *Env {
	return &Env{}
}

// Populate fills the settings from the environment. Both variables are
// optional: the base URL defaults to the public API and the timeout
// defaults to none, leaving a slow server to block the caller.
func (e *Env) Populate() error {
	e.BaseURL = client.DefaultBaseURL
	if baseURL := os.Getenv("NILU_BASE_URL"); baseURL != "" {
		e.BaseURL = baseURL
	}

	if timeout := os.Getenv("NILU_HTTP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return &env.TypeError{Name: "NILU_HTTP_TIMEOUT"}
		}
		e.Timeout = d
	}

	return nil
}
