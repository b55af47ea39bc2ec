package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/inkwell-labs/inkwell/internal/types"
)

type reflectionModel struct {
	ID          int
	UserID      string
	SupportType string
	Personality string
	Content     string
	Fallback    bool
	CreatedAt   time.Time
}

func (reflectionModel) TableName() string {
	return "reflections"
}

// ReflectionRepo accesses the persisted reflection log.
type ReflectionRepo struct {
	db *gorm.DB
}

// NewReflectionRepo returns a ReflectionRepo.
func NewReflectionRepo(db *gorm.DB) *ReflectionRepo {
	return &ReflectionRepo{db: db}
}

func (r *ReflectionRepo) Add(ctx context.Context, ref types.Reflection) error {
	record := reflectionModel{
		UserID:      ref.UserID,
		SupportType: ref.SupportType,
		Personality: ref.Personality,
		Content:     ref.Content,
		Fallback:    ref.Fallback,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert reflection: %w", err)
	}
	return nil
}

// RecentByUser returns the newest reflections for a user in
// oldest-first order.
func (r *ReflectionRepo) RecentByUser(ctx context.Context, userID string, limit int) ([]types.Reflection, error) {
	var records []reflectionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query reflections: %w", err)
	}

	results := make([]types.Reflection, 0, len(records))
	for _, record := range records {
		results = append(results, types.Reflection{
			ID:          record.ID,
			UserID:      record.UserID,
			SupportType: record.SupportType,
			Personality: record.Personality,
			Content:     record.Content,
			Fallback:    record.Fallback,
			CreatedAt:   record.CreatedAt,
		})
	}

	// Oldest -> newest
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}
