// internal/config/database.go
package config

import (
	"time"
)

func (d *DatabaseConfig) ConnectTimeoutDuration() time.Duration {
	return time.Duration(d.ConnectTimeout) * time.Second
}

func (d *DatabaseConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(d.QueryTimeout) * time.Second
}
