package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type usageModel struct {
	ID             int
	UserID         string
	Month          string
	ReplyCount     int
	SentimentCount int
	UpdatedAt      time.Time
}

func (usageModel) TableName() string {
	return "ai_usage"
}

// UsageTotals is one user's counters for one month.
type UsageTotals struct {
	ReplyCount     int
	SentimentCount int
}

// UsageRepo tracks per-user monthly AI call counters. Quota
// enforcement itself lives with the caller; this only counts.
type UsageRepo struct {
	db *gorm.DB
}

// NewUsageRepo returns a UsageRepo.
func NewUsageRepo(db *gorm.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// IncrementReply bumps the reply counter for userID in month
// (formatted 2006-01).
func (r *UsageRepo) IncrementReply(ctx context.Context, userID, month string) error {
	return r.increment(ctx, userID, month, "reply_count")
}

// IncrementSentiment bumps the sentiment counter.
func (r *UsageRepo) IncrementSentiment(ctx context.Context, userID, month string) error {
	return r.increment(ctx, userID, month, "sentiment_count")
}

func (r *UsageRepo) increment(ctx context.Context, userID, month, column string) error {
	var record usageModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = usageModel{UserID: userID, Month: month}
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create usage row: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to load usage row: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&usageModel{}).
		Where("id = ?", record.ID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error; err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	return nil
}

// MonthTotals returns the counters for userID in month; zero totals
// when no row exists.
func (r *UsageRepo) MonthTotals(ctx context.Context, userID, month string) (UsageTotals, error) {
	var record usageModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UsageTotals{}, nil
	}
	if err != nil {
		return UsageTotals{}, fmt.Errorf("failed to load usage row: %w", err)
	}
	return UsageTotals{ReplyCount: record.ReplyCount, SentimentCount: record.SentimentCount}, nil
}
