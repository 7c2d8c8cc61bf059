package refreshlog

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	LogRefresh(endpoint, cacheKey string, duration time.Duration, refreshErr error) error
	GetRecentRefresh(endpoint string) (*Refresh, error)
}

type RefreshSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &RefreshSQLRepository{db: db}
}

func (r *RefreshSQLRepository) LogRefresh(endpoint, cacheKey string, duration time.Duration, refreshErr error) error {
	refresh := Refresh{
		Endpoint:   endpoint,
		CacheKey:   cacheKey,
		Success:    refreshErr == nil,
		DurationMs: duration.Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if refreshErr != nil {
		refresh.ErrorMessage = refreshErr.Error()
	}

	return r.db.Create(&refresh).Error
}

func (r *RefreshSQLRepository) GetRecentRefresh(endpoint string) (*Refresh, error) {
	var refresh Refresh
	err := r.db.Where("endpoint = ?", endpoint).Order("created_at DESC").First(&refresh).Error
	if err != nil {
		return nil, err
	}
	return &refresh, nil
}
