package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidneynma/astracampaign-sub002/internal/services"
	"github.com/sidneynma/astracampaign-sub002/internal/utils"
)

type CrmHandler struct {
	chatwoot *services.ChatwootService
}

func NewCrmHandler(chatwoot *services.ChatwootService) *CrmHandler {
	return &CrmHandler{chatwoot: chatwoot}
}

type ContactSyncRequest struct {
	Name  string   `json:"name" binding:"required"`
	Email string   `json:"email" binding:"required,email"`
	Phone string   `json:"phone"`
	Tags  []string `json:"tags"`
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *CrmHandler) FetchTags(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mappings, err := h.chatwoot.FetchTags(ctx.Request.Context(), user.TenantID)

	if err != nil {
		respondError(ctx, err, "tag", "Failed to fetch CRM tags")
		return
	}

	tags := make([]TagResponse, 0, len(mappings))
	for _, mapping := range mappings {
		tags = append(tags, TagResponse{ID: mapping.VendorTagID, Name: mapping.Name})
	}

	ctx.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *CrmHandler) SyncContact(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ContactSyncRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	link, err := h.chatwoot.SyncContact(ctx.Request.Context(), user.TenantID, services.ContactSyncInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Tags:  req.Tags,
	})

	if err != nil {
		respondError(ctx, err, "contact", "Failed to sync contact")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":         "Contact synced successfully",
		"email":           link.Email,
		"vendorContactId": link.VendorContactID,
	})
}
