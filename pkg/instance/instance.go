package instance

import (
	"os"

	"github.com/angelmondragon/daypass-backend/pkg/env"
)

// ID identifies the running process in logs. DAYPASS_INSTANCE_ID wins, then
// the platform dyno name, then the hostname.
func ID() string {
	if id := env.Get("DAYPASS_INSTANCE_ID", env.Get("DYNO", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "api-0"
}
