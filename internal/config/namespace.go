package config

import (
    "strings"
    "time"
)

// Namespace backends.
const (
    BackendMemory = "memory"
    BackendRedis  = "redis"
    BackendMySQL  = "mysql"
)

// NamespaceConfig selects where session namespaces live.  Prefix and TTL only
// apply to the redis backend; a zero TTL keeps keys forever.
type NamespaceConfig struct {
    Backend string
    Prefix  string
    TTL     time.Duration
}

func LoadNamespaceConfig() NamespaceConfig {
    cfg := NamespaceConfig{
        Backend: strings.ToLower(envStr("NAMESPACE_BACKEND", BackendMemory)),
        Prefix:  envStr("NAMESPACE_PREFIX", "tm:ns"),
        TTL:     envDur("NAMESPACE_TTL", 0),
    }
    switch cfg.Backend {
    case BackendMemory, BackendRedis, BackendMySQL:
    default:
        cfg.Backend = BackendMemory
    }
    if cfg.TTL < 0 {
        cfg.TTL = 0
    }
    return cfg
}
