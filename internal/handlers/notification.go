package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidneynma/astracampaign-sub002/internal/models"
	"github.com/sidneynma/astracampaign-sub002/internal/services"
	"github.com/sidneynma/astracampaign-sub002/internal/types"
	"github.com/sidneynma/astracampaign-sub002/internal/utils"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type TenantResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type AlertResponse struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	Severity  string          `json:"severity"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Tenant    *TenantResponse `json:"tenant,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type NotificationResponse struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"userId"`
	AlertID   uint           `json:"alertId"`
	Method    string         `json:"method"`
	Read      bool           `json:"read"`
	ReadAt    *time.Time     `json:"readAt"`
	CreatedAt time.Time      `json:"createdAt"`
	Alert     *AlertResponse `json:"alert,omitempty"`
}

// RecentNotification is the reduced projection used by the summary.
type RecentNotification struct {
	ID        uint       `json:"id"`
	Method    string     `json:"method"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt"`
	CreatedAt time.Time  `json:"createdAt"`
	Type      string     `json:"type"`
	Severity  string     `json:"severity"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Tenant    string     `json:"tenant"`
}

func buildNotificationResponse(notification models.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		AlertID:   notification.AlertID,
		Method:    notification.Method,
		Read:      notification.Read,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}

	if notification.Alert.ID != 0 {
		alert := AlertResponse{
			ID:        notification.Alert.ID,
			Type:      notification.Alert.Type,
			Severity:  notification.Alert.Severity,
			Title:     notification.Alert.Title,
			Message:   notification.Alert.Message,
			CreatedAt: notification.Alert.CreatedAt,
		}

		if notification.Alert.Tenant.ID != 0 {
			alert.Tenant = &TenantResponse{
				ID:   notification.Alert.Tenant.ID,
				Name: notification.Alert.Tenant.Name,
				Slug: notification.Alert.Tenant.Slug,
			}
		}

		response.Alert = &alert
	}

	return response
}

func (h *NotificationHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query, err := types.ParseNotificationQuery(
		ctx.Query("page"),
		ctx.Query("limit"),
		ctx.Query("read"),
		ctx.Query("method"),
	)

	if err != nil {
		respondError(ctx, err, "notification", "Failed to retrieve notifications")
		return
	}

	result, err := h.notifications.List(ctx.Request.Context(), userID, query)

	if err != nil {
		respondError(ctx, err, "notification", "Failed to retrieve notifications")
		return
	}

	notifications := make([]NotificationResponse, 0, len(result.Notifications))
	for _, notification := range result.Notifications {
		notifications = append(notifications, buildNotificationResponse(notification))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    result.Pagination,
	})
}

func (h *NotificationHandler) UnreadCount(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.notifications.UnreadCount(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err, "notification", "Failed to retrieve unread count")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

func (h *NotificationHandler) MarkAsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	notification, updated, err := h.notifications.MarkAsRead(ctx.Request.Context(), uint(id), userID)

	if err != nil {
		respondError(ctx, err, "notification", "Failed to mark notification as read")
		return
	}

	message := "Notification marked as read"
	if !updated {
		message = "Notification was already read"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":      message,
		"notification": buildNotificationResponse(*notification),
	})
}

func (h *NotificationHandler) MarkAllAsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.notifications.MarkAllAsRead(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err, "notification", "Failed to mark notifications as read")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d notifications marked as read", count),
		"count":   count,
	})
}

func (h *NotificationHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := h.notifications.Delete(ctx.Request.Context(), uint(id), userID); err != nil {
		respondError(ctx, err, "notification", "Failed to delete notification")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func (h *NotificationHandler) Summary(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	summary, err := h.notifications.Summary(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err, "notification", "Failed to retrieve summary")
		return
	}

	recent := make([]RecentNotification, 0, len(summary.Recent))
	for _, notification := range summary.Recent {
		recent = append(recent, RecentNotification{
			ID:        notification.ID,
			Method:    notification.Method,
			Read:      notification.Read,
			ReadAt:    notification.ReadAt,
			CreatedAt: notification.CreatedAt,
			Type:      notification.Alert.Type,
			Severity:  notification.Alert.Severity,
			Title:     notification.Alert.Title,
			Message:   notification.Alert.Message,
			Tenant:    notification.Alert.Tenant.Name,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"summary": summary.Counts,
		"recent":  recent,
	})
}
