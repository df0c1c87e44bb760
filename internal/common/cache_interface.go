package common

import "time"

// CacheInterface defines the cache operations used by the stats services
type CacheInterface interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
}
