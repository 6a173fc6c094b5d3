package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sidneynma/astracampaign-sub002/internal/apperrors"
	"github.com/sidneynma/astracampaign-sub002/internal/models"
	"gorm.io/gorm"
)

type AlertService struct {
	db *gorm.DB
}

func NewAlertService(database *gorm.DB) *AlertService {
	return &AlertService{db: database}
}

type AlertInput struct {
	Type     string
	Severity string
	Title    string
	Message  string
	Method   string
	Metadata map[string]interface{}
}

// Ingest records an alert for the tenant and fans out an unread
// notification to every user of that tenant on the requested channel.
// Alert and notifications are written in one transaction.
func (s *AlertService) Ingest(ctx context.Context, tenantID uint, input AlertInput) (*models.Alert, int, error) {
	switch input.Method {
	case models.MethodEmail, models.MethodPush, models.MethodInApp:
	default:
		return nil, 0, fmt.Errorf("%w: unknown delivery method %q", apperrors.ErrValidation, input.Method)
	}

	var metadata []byte
	if input.Metadata != nil {
		var err error
		metadata, err = json.Marshal(input.Metadata)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: metadata is not serializable", apperrors.ErrValidation)
		}
	}

	alert := models.Alert{
		TenantID: tenantID,
		Type:     input.Type,
		Severity: input.Severity,
		Title:    input.Title,
		Message:  input.Message,
		Metadata: metadata,
	}

	var created int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&alert).Error; err != nil {
			return err
		}

		var userIDs []uint
		if err := tx.Model(&models.User{}).
			Where("tenant_id = ?", tenantID).
			Pluck("id", &userIDs).Error; err != nil {
			return err
		}

		if len(userIDs) == 0 {
			return nil
		}

		notifications := make([]models.Notification, 0, len(userIDs))
		for _, userID := range userIDs {
			notifications = append(notifications, models.Notification{
				UserID:  userID,
				AlertID: alert.ID,
				Method:  input.Method,
				Read:    false,
			})
		}

		if err := tx.Create(&notifications).Error; err != nil {
			return err
		}

		created = len(notifications)
		return nil
	})

	if err != nil {
		return nil, 0, err
	}

	return &alert, created, nil
}

// ListByTenant returns the tenant's alerts, newest first.
func (s *AlertService) ListByTenant(ctx context.Context, tenantID uint) ([]models.Alert, error) {
	var alerts []models.Alert

	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&alerts).Error

	return alerts, err
}
