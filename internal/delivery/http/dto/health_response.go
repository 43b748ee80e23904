package dto

import (
	"time"

	"job-match/internal/domain"
)

type HealthResponse struct {
	App         string `json:"app"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
	Redis       string `json:"redis"`
	ServerTime  string `json:"server_time"`
}

func FromServiceStatus(s domain.ServiceStatus, dbConfigured, redisConfigured bool) HealthResponse {
	return HealthResponse{
		App:         s.App,
		Environment: s.Environment,
		Database:    dependencyState(dbConfigured, s.DatabaseHealthy),
		Redis:       dependencyState(redisConfigured, s.RedisHealthy),
		ServerTime:  s.ServerTime.UTC().Format(time.RFC3339),
	}
}

func dependencyState(configured, healthy bool) string {
	switch {
	case !configured:
		return "disabled"
	case healthy:
		return "up"
	default:
		return "down"
	}
}
