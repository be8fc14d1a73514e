package api

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse describes the discovery progress stored in the checkpoint.
type StatusResponse struct {
	// LastBlock is the first block not yet scanned
	LastBlock uint64 `json:"last_block"`

	// Factories is the number of known factories regardless of AMM count
	Factories int `json:"factories"`

	// AMMs is the total number of AMMs attributed to known factories
	AMMs uint64 `json:"amms"`

	// Kinds counts known factories per kind
	Kinds map[string]int `json:"kinds"`
}

// FactoryInfo is a discovered factory with its AMM count.
type FactoryInfo struct {
	Address       string `json:"address"`
	Kind          string `json:"kind"`
	CreationBlock uint64 `json:"creation_block"`
	Fee           uint32 `json:"fee,omitempty"`
	AMMs          uint64 `json:"amms"`
}

// FactoryListResponse lists factories ordered by AMM count, highest first.
type FactoryListResponse struct {
	Factories []FactoryInfo `json:"factories"`
	Total     int           `json:"total"`
	LastBlock uint64        `json:"last_block"`
}
