package types

import (
	"testing"

	"github.com/sidneynma/astracampaign-sub002/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotificationQuery(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		limit   string
		read    string
		method  string
		want    NotificationQuery
		wantErr bool
	}{
		{
			name: "defaults",
			want: NotificationQuery{Page: 1, Limit: 20},
		},
		{
			name:  "explicit values",
			page:  "3",
			limit: "50",
			want:  NotificationQuery{Page: 3, Limit: 50},
		},
		{
			name:  "limit clamped to cap",
			limit: "5000",
			want:  NotificationQuery{Page: 1, Limit: MaxPageSize},
		},
		{
			name: "all disables filters",
			read: "all", method: "all",
			want: NotificationQuery{Page: 1, Limit: 20},
		},
		{
			name:   "method filter kept",
			method: "email",
			want:   NotificationQuery{Page: 1, Limit: 20, Method: "email"},
		},
		{name: "zero page rejected", page: "0", wantErr: true},
		{name: "negative limit rejected", limit: "-5", wantErr: true},
		{name: "non-numeric page rejected", page: "abc", wantErr: true},
		{name: "unknown read value rejected", read: "banana", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNotificationQuery(tt.page, tt.limit, tt.read, tt.method)

			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNotificationQueryReadFilter(t *testing.T) {
	got, err := ParseNotificationQuery("", "", "true", "")
	require.NoError(t, err)
	require.NotNil(t, got.Read)
	assert.True(t, *got.Read)

	got, err = ParseNotificationQuery("", "", "false", "")
	require.NoError(t, err)
	require.NotNil(t, got.Read)
	assert.False(t, *got.Read)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Pagination
	}{
		{
			name: "middle page",
			page: 2, limit: 20, total: 45,
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 45, ItemsPerPage: 20, HasNext: true, HasPrev: true},
		},
		{
			name: "last page",
			page: 3, limit: 20, total: 45,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalItems: 45, ItemsPerPage: 20, HasNext: false, HasPrev: true},
		},
		{
			name: "exact multiple",
			page: 1, limit: 20, total: 40,
			want: Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 40, ItemsPerPage: 20, HasNext: true, HasPrev: false},
		},
		{
			name: "empty result",
			page: 1, limit: 20, total: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 20, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}
