package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sidneynma/astracampaign-sub002/internal/apperrors"
	"github.com/sidneynma/astracampaign-sub002/internal/config"
	"github.com/sidneynma/astracampaign-sub002/internal/models"
	"github.com/sony/gobreaker"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatwootService wraps the CRM vendor HTTP API. Every call checks the
// configuration first so an unconfigured integration surfaces as
// apperrors.ErrNotConfigured rather than a network failure.
type ChatwootService struct {
	db      *gorm.DB
	cfg     config.ChatwootConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewChatwootService(database *gorm.DB, cfg config.ChatwootConfig) *ChatwootService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "chatwoot",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &ChatwootService{
		db:      database,
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: breaker,
	}
}

type chatwootLabel struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type chatwootLabelsResponse struct {
	Payload []chatwootLabel `json:"payload"`
}

type chatwootContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type chatwootContactResponse struct {
	Payload struct {
		Contact struct {
			ID int64 `json:"id"`
		} `json:"contact"`
	} `json:"payload"`
}

type chatwootLabelsRequest struct {
	Labels []string `json:"labels"`
}

type ContactSyncInput struct {
	Name  string
	Email string
	Phone string
	Tags  []string
}

// FetchTags pulls the vendor's label list and mirrors it into
// CrmTagMapping rows for the tenant.
func (s *ChatwootService) FetchTags(ctx context.Context, tenantID uint) ([]models.CrmTagMapping, error) {
	if !s.cfg.Configured() {
		return nil, apperrors.ErrNotConfigured
	}

	var response chatwootLabelsResponse
	path := fmt.Sprintf("/api/v1/accounts/%s/labels", s.cfg.AccountID)

	if err := s.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}

	mappings := make([]models.CrmTagMapping, 0, len(response.Payload))
	for _, label := range response.Payload {
		mappings = append(mappings, models.CrmTagMapping{
			TenantID:    tenantID,
			VendorTagID: label.ID,
			Name:        label.Title,
		})
	}

	if len(mappings) > 0 {
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "vendor_tag_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&mappings).Error; err != nil {
			return nil, err
		}
	}

	return mappings, nil
}

// SyncContact forwards the contact to the vendor, applies its tags and
// persists the vendor contact id for the tenant.
func (s *ChatwootService) SyncContact(ctx context.Context, tenantID uint, input ContactSyncInput) (*models.CrmContactLink, error) {
	if !s.cfg.Configured() {
		return nil, apperrors.ErrNotConfigured
	}

	if input.Email == "" {
		return nil, fmt.Errorf("%w: contact email is required", apperrors.ErrValidation)
	}

	var response chatwootContactResponse
	path := fmt.Sprintf("/api/v1/accounts/%s/contacts", s.cfg.AccountID)

	if err := s.do(ctx, http.MethodPost, path, chatwootContactRequest{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.Phone,
	}, &response); err != nil {
		return nil, err
	}

	contactID := response.Payload.Contact.ID

	if len(input.Tags) > 0 {
		labelsPath := fmt.Sprintf("/api/v1/accounts/%s/contacts/%d/labels", s.cfg.AccountID, contactID)
		if err := s.do(ctx, http.MethodPost, labelsPath, chatwootLabelsRequest{Labels: input.Tags}, nil); err != nil {
			return nil, err
		}
	}

	link := models.CrmContactLink{
		TenantID:        tenantID,
		Email:           input.Email,
		VendorContactID: contactID,
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"vendor_contact_id", "updated_at"}),
	}).Create(&link).Error; err != nil {
		return nil, err
	}

	return &link, nil
}

func (s *ChatwootService) do(ctx context.Context, method, path string, payload, out interface{}) error {
	body, err := s.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader

		if payload != nil {
			encoded, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request: %w", err)
			}
			reader = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, s.cfg.BaseURL+path, reader)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("api_access_token", s.cfg.APIToken)

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to reach CRM API: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("CRM API returned status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})

	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(body.([]byte), out); err != nil {
			return fmt.Errorf("failed to decode CRM response: %w", err)
		}
	}

	return nil
}
