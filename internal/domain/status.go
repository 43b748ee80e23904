package domain

import "time"

type ServiceStatus struct {
	App             string    `json:"app"`
	Environment     string    `json:"environment"`
	DatabaseHealthy bool      `json:"database_healthy"`
	RedisHealthy    bool      `json:"redis_healthy"`
	ServerTime      time.Time `json:"server_time"`
}
