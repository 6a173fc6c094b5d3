package types

import (
	"fmt"
	"strconv"

	"github.com/sidneynma/astracampaign-sub002/internal/apperrors"
)

// NotificationQuery is the validated filter set a listing accepts. Read
// is nil when no read-state filter applies; Method is empty when no
// channel filter applies.
type NotificationQuery struct {
	Page   int
	Limit  int
	Read   *bool
	Method string
}

// ParseNotificationQuery validates raw query parameters. Defaults are
// page=1 limit=20; limit is clamped to MaxPageSize. The literal "all"
// (or an empty value) disables a filter.
func ParseNotificationQuery(page, limit, read, method string) (NotificationQuery, error) {
	q := NotificationQuery{Page: 1, Limit: 20}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return q, fmt.Errorf("%w: page must be a positive integer", apperrors.ErrValidation)
		}
		q.Page = n
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return q, fmt.Errorf("%w: limit must be a positive integer", apperrors.ErrValidation)
		}
		if n > MaxPageSize {
			n = MaxPageSize
		}
		q.Limit = n
	}

	switch read {
	case "", "all":
	case "true":
		v := true
		q.Read = &v
	case "false":
		v := false
		q.Read = &v
	default:
		return q, fmt.Errorf("%w: read must be one of all, true, false", apperrors.ErrValidation)
	}

	if method != "" && method != "all" {
		q.Method = method
	}

	return q, nil
}

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}
