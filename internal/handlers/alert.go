package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidneynma/astracampaign-sub002/internal/services"
	"github.com/sidneynma/astracampaign-sub002/internal/utils"
)

type AlertHandler struct {
	alerts *services.AlertService
}

func NewAlertHandler(alerts *services.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

type CreateAlertRequest struct {
	Type     string                 `json:"type" binding:"required"`
	Severity string                 `json:"severity" binding:"required,oneof=info warning critical"`
	Title    string                 `json:"title" binding:"required"`
	Message  string                 `json:"message"`
	Method   string                 `json:"method" binding:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

func (h *AlertHandler) Create(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateAlertRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	alert, notified, err := h.alerts.Ingest(ctx.Request.Context(), user.TenantID, services.AlertInput{
		Type:     req.Type,
		Severity: req.Severity,
		Title:    req.Title,
		Message:  req.Message,
		Method:   req.Method,
		Metadata: req.Metadata,
	})

	if err != nil {
		respondError(ctx, err, "alert", "Failed to create alert")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Alert created successfully",
		"alertId":  alert.ID,
		"notified": notified,
	})
}

func (h *AlertHandler) List(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	alerts, err := h.alerts.ListByTenant(ctx.Request.Context(), user.TenantID)

	if err != nil {
		respondError(ctx, err, "alert", "Failed to retrieve alerts")
		return
	}

	response := make([]AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		response = append(response, AlertResponse{
			ID:        alert.ID,
			Type:      alert.Type,
			Severity:  alert.Severity,
			Title:     alert.Title,
			Message:   alert.Message,
			CreatedAt: alert.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"alerts": response})
}
