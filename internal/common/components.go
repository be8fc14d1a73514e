package common

const (
	ComponentDiscovery  = "discovery"
	ComponentCheckpoint = "checkpoint"
	ComponentRPC        = "rpc"
	ComponentRegistry   = "registry"
	ComponentAPI        = "api"
	ComponentMetrics    = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentDiscovery:  {},
	ComponentCheckpoint: {},
	ComponentRPC:        {},
	ComponentRegistry:   {},
	ComponentAPI:        {},
	ComponentMetrics:    {},
}
