package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidneynma/astracampaign-sub002/internal/apperrors"
	"github.com/sidneynma/astracampaign-sub002/internal/logging"
)

// respondError maps a service error to the HTTP taxonomy. Error detail
// stays in the server log; clients get a generic message per status, or
// guidance text for configuration errors.
func respondError(ctx *gin.Context, err error, resource, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this " + resource})
	case errors.Is(err, apperrors.ErrNotConfigured):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "CRM integration is not configured. Set CHATWOOT_BASE_URL, CHATWOOT_API_TOKEN and CHATWOOT_ACCOUNT_ID.",
		})
	default:
		logging.Logger.WithField("request_id", ctx.GetString("request_id")).
			WithError(err).Error(internalMsg)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
