package refreshlog

import (
	"time"
)

// Refresh records one attempt to repopulate a cache entry from upstream.
type Refresh struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Endpoint     string    `json:"endpoint" gorm:"index:idx_endpoint;index:idx_endpoint_created_at"`
	CacheKey     string    `json:"cache_key" gorm:"column:cache_key"`
	Success      bool      `json:"success" gorm:"column:success"`
	ErrorMessage string    `json:"error_message,omitempty" gorm:"column:error_message"`
	DurationMs   int64     `json:"duration_ms" gorm:"column:duration_ms"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_created_at;index:idx_endpoint_created_at"`
}

func (Refresh) TableName() string {
	return "cache_refreshes"
}

// Endpoint names recorded in the Endpoint column.
const (
	EndpointWeather    = "weather"
	EndpointDailyImage = "daily-image"
	EndpointLocation   = "location"
	EndpointArtSearch  = "art-search"
	EndpointArtObject  = "art-object"
)

var Endpoints = []string{
	EndpointWeather,
	EndpointDailyImage,
	EndpointLocation,
	EndpointArtSearch,
	EndpointArtObject,
}
