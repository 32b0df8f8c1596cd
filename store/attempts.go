// Package store persists the payment-attempt journal.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Govind-619/MarketSphere/models"
	"gorm.io/gorm"
)

// AttemptFilter narrows List. Zero fields match everything.
type AttemptFilter struct {
	OrderID   string
	SessionID string
	Outcome   string
	Offset    int
	Limit     int
}

// AttemptJournal stores PaymentAttempt rows with gorm. It implements
// checkout.Journal.
type AttemptJournal struct {
	db *gorm.DB
}

func NewAttemptJournal(db *gorm.DB) *AttemptJournal {
	return &AttemptJournal{db: db}
}

// Record inserts attempt.
func (j *AttemptJournal) Record(ctx context.Context, attempt models.PaymentAttempt) error {
	if err := j.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return fmt.Errorf("failed to record payment attempt for order %s: %v", attempt.OrderID, err)
	}
	return nil
}

// List returns matching attempts newest first, together with the total count
// before paging.
func (j *AttemptJournal) List(ctx context.Context, filter AttemptFilter) ([]models.PaymentAttempt, int64, error) {
	query := j.db.WithContext(ctx).Model(&models.PaymentAttempt{})
	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payment attempts: %v", err)
	}

	var attempts []models.PaymentAttempt
	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payment attempts: %v", err)
	}
	return attempts, total, nil
}

// Get returns one attempt by id.
func (j *AttemptJournal) Get(ctx context.Context, id uint) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	err := j.db.WithContext(ctx).First(&attempt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

var ErrAttemptNotFound = errors.New("payment attempt not found")
