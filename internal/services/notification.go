package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sidneynma/astracampaign-sub002/internal/apperrors"
	"github.com/sidneynma/astracampaign-sub002/internal/models"
	"github.com/sidneynma/astracampaign-sub002/internal/types"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RecentLimit bounds the recent slice returned by Summary.
const RecentLimit = 10

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(database *gorm.DB) *NotificationService {
	return &NotificationService{db: database}
}

type NotificationList struct {
	Notifications []models.Notification
	Pagination    types.Pagination
}

type NotificationCounts struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Read   int64 `json:"read"`
}

type NotificationSummary struct {
	Counts NotificationCounts
	Recent []models.Notification
}

// List returns one page of the user's notifications, unread first and
// newest first within each read state.
func (s *NotificationService) List(ctx context.Context, userID uint, q types.NotificationQuery) (*NotificationList, error) {
	scoped := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
		if q.Read != nil {
			query = query.Where("read = ?", *q.Read)
		}
		if q.Method != "" {
			query = query.Where("method = ?", q.Method)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, err
	}

	var notifications []models.Notification
	if err := scoped().
		Preload("Alert").
		Preload("Alert.Tenant").
		Order("read ASC, created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	return &NotificationList{
		Notifications: notifications,
		Pagination:    types.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error

	return count, err
}

// MarkAsRead transitions one notification to read. Already-read
// notifications are a no-op: the second return is false and ReadAt keeps
// its original stamp.
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID uint) (*models.Notification, bool, error) {
	var notification models.Notification

	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("%w: notification %d", apperrors.ErrNotFound, id)
		}
		return nil, false, err
	}

	if notification.UserID != userID {
		return nil, false, fmt.Errorf("%w: notification %d belongs to another user", apperrors.ErrForbidden, id)
	}

	updated := false

	if !notification.Read {
		now := time.Now()
		if err := s.db.WithContext(ctx).Model(&notification).
			Updates(map[string]interface{}{"read": true, "read_at": &now}).Error; err != nil {
			return nil, false, err
		}
		updated = true
	}

	if err := s.db.WithContext(ctx).
		Preload("Alert").
		Preload("Alert.Tenant").
		First(&notification, id).Error; err != nil {
		return nil, false, err
	}

	return &notification, updated, nil
}

// MarkAllAsRead stamps every unread notification of the user with a
// single timestamp and returns the number of affected rows.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	now := time.Now()

	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now})

	return result.RowsAffected, result.Error
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uint) error {
	var notification models.Notification

	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification %d", apperrors.ErrNotFound, id)
		}
		return err
	}

	if notification.UserID != userID {
		return fmt.Errorf("%w: notification %d belongs to another user", apperrors.ErrForbidden, id)
	}

	return s.db.WithContext(ctx).Unscoped().Delete(&notification).Error
}

// Summary aggregates total/unread counts and the most recent
// notifications. The three queries are independent and run concurrently.
func (s *NotificationService) Summary(ctx context.Context, userID uint) (*NotificationSummary, error) {
	var (
		total  int64
		unread int64
		recent []models.Notification
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Notification{}).
			Where("user_id = ?", userID).
			Count(&total).Error
	})

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Notification{}).
			Where("user_id = ? AND read = ?", userID, false).
			Count(&unread).Error
	})

	g.Go(func() error {
		return s.db.WithContext(gctx).
			Preload("Alert").
			Preload("Alert.Tenant").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(RecentLimit).
			Find(&recent).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &NotificationSummary{
		Counts: NotificationCounts{
			Total:  total,
			Unread: unread,
			Read:   total - unread,
		},
		Recent: recent,
	}, nil
}
