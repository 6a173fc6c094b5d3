package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sidneynma/astracampaign-sub002/internal/middleware"
	"github.com/sidneynma/astracampaign-sub002/internal/models"
	"github.com/sidneynma/astracampaign-sub002/internal/services"
	"github.com/sidneynma/astracampaign-sub002/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Alert{},
		&models.Notification{},
		&models.MediaFile{},
	))

	return database
}

// testAuth replaces the JWT middleware so handler tests can act as a
// fixed user.
func testAuth(user middleware.AuthenticatedUser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

func notificationRouter(database *gorm.DB, user middleware.AuthenticatedUser) *gin.Engine {
	handler := NewNotificationHandler(services.NewNotificationService(database))

	r := gin.New()
	group := r.Group("/api/notifications", testAuth(user))
	group.GET("", handler.List)
	group.GET("/unread-count", handler.UnreadCount)
	group.GET("/summary", handler.Summary)
	group.POST("/mark-all-read", handler.MarkAllAsRead)
	group.POST("/:id/mark-read", handler.MarkAsRead)
	group.DELETE("/:id", handler.Delete)
	return r
}

func seedInbox(t *testing.T, database *gorm.DB) (models.User, models.User, models.Notification) {
	t.Helper()

	tenant := models.Tenant{Name: "Acme", Slug: "acme-" + uuid.NewString()[:8]}
	require.NoError(t, database.Create(&tenant).Error)

	owner := models.User{TenantID: tenant.ID, Name: "Owner", Email: uuid.NewString() + "@example.com", PasswordHash: "x", Role: models.RoleMember}
	require.NoError(t, database.Create(&owner).Error)
	stranger := models.User{TenantID: tenant.ID, Name: "Stranger", Email: uuid.NewString() + "@example.com", PasswordHash: "x", Role: models.RoleMember}
	require.NoError(t, database.Create(&stranger).Error)

	alert := models.Alert{TenantID: tenant.ID, Type: "campaign", Severity: "info", Title: "Done", Message: "Campaign finished"}
	require.NoError(t, database.Create(&alert).Error)

	notification := models.Notification{UserID: owner.ID, AlertID: alert.ID, Method: models.MethodInApp}
	require.NoError(t, database.Create(&notification).Error)

	return owner, stranger, notification
}

func asUser(user models.User) middleware.AuthenticatedUser {
	return middleware.AuthenticatedUser{
		ID:       user.ID,
		TenantID: user.TenantID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func TestListNotificationsResponseShape(t *testing.T) {
	database := newTestDB(t)
	owner, _, _ := seedInbox(t, database)
	router := notificationRouter(database, asUser(owner))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications?page=1&limit=20", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Notifications []NotificationResponse `json:"notifications"`
		Pagination    types.Pagination       `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Notifications, 1)
	assert.Equal(t, owner.ID, body.Notifications[0].UserID)
	assert.False(t, body.Notifications[0].Read)
	require.NotNil(t, body.Notifications[0].Alert)
	assert.Equal(t, "Done", body.Notifications[0].Alert.Title)
	assert.Equal(t, 1, body.Pagination.CurrentPage)
	assert.EqualValues(t, 1, body.Pagination.TotalItems)
}

func TestListNotificationsRejectsBadFilter(t *testing.T) {
	database := newTestDB(t)
	owner, _, _ := seedInbox(t, database)
	router := notificationRouter(database, asUser(owner))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications?read=banana", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnreadCountEndpoint(t *testing.T) {
	database := newTestDB(t)
	owner, _, _ := seedInbox(t, database)
	router := notificationRouter(database, asUser(owner))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unreadCount": 1}`, w.Body.String())
}

func TestMarkAsReadEndpoint(t *testing.T) {
	database := newTestDB(t)
	owner, stranger, notification := seedInbox(t, database)

	t.Run("forbidden for non-owner", func(t *testing.T) {
		router := notificationRouter(database, asUser(stranger))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/notifications/%d/mark-read", notification.ID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		var unchanged models.Notification
		require.NoError(t, database.First(&unchanged, notification.ID).Error)
		assert.False(t, unchanged.Read)
	})

	t.Run("not found", func(t *testing.T) {
		router := notificationRouter(database, asUser(owner))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/notifications/99999/mark-read", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner marks read", func(t *testing.T) {
		router := notificationRouter(database, asUser(owner))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/notifications/%d/mark-read", notification.ID), nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Message      string               `json:"message"`
			Notification NotificationResponse `json:"notification"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Notification marked as read", body.Message)
		assert.True(t, body.Notification.Read)
		assert.NotNil(t, body.Notification.ReadAt)

		// Repeat call reports the no-op.
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/notifications/%d/mark-read", notification.ID), nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Notification was already read", body.Message)
	})
}

func TestMarkAllAsReadEndpoint(t *testing.T) {
	database := newTestDB(t)
	owner, _, notification := seedInbox(t, database)

	more := models.Notification{UserID: owner.ID, AlertID: notification.AlertID, Method: models.MethodEmail}
	require.NoError(t, database.Create(&more).Error)

	router := notificationRouter(database, asUser(owner))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/mark-all-read", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
		Count   int64  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Count)
	assert.Equal(t, "2 notifications marked as read", body.Message)
}

func TestDeleteNotificationEndpoint(t *testing.T) {
	database := newTestDB(t)
	owner, stranger, notification := seedInbox(t, database)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/notifications/%d", notification.ID), nil)
	notificationRouter(database, asUser(stranger)).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/notifications/%d", notification.ID), nil)
	notificationRouter(database, asUser(owner)).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/notifications/%d", notification.ID), nil)
	notificationRouter(database, asUser(owner)).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	database := newTestDB(t)
	owner, _, notification := seedInbox(t, database)

	read := models.Notification{UserID: owner.ID, AlertID: notification.AlertID, Method: models.MethodEmail, Read: true}
	now := time.Now()
	read.ReadAt = &now
	require.NoError(t, database.Create(&read).Error)

	router := notificationRouter(database, asUser(owner))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/summary", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Summary services.NotificationCounts `json:"summary"`
		Recent  []RecentNotification        `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Summary.Total)
	assert.EqualValues(t, 1, body.Summary.Unread)
	assert.EqualValues(t, 1, body.Summary.Read)
	require.Len(t, body.Recent, 2)
	assert.Equal(t, "Done", body.Recent[0].Title)
	assert.Equal(t, "Acme", body.Recent[0].Tenant)
}
