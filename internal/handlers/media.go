package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidneynma/astracampaign-sub002/internal/logging"
	"github.com/sidneynma/astracampaign-sub002/internal/models"
	"github.com/sidneynma/astracampaign-sub002/internal/types"
	"github.com/sidneynma/astracampaign-sub002/internal/utils"
	"gorm.io/gorm"
)

type MediaHandler struct {
	db       *gorm.DB
	mediaDir string
}

func NewMediaHandler(database *gorm.DB, mediaDir string) *MediaHandler {
	return &MediaHandler{db: database, mediaDir: mediaDir}
}

type MediaFileResponse struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (h *MediaHandler) Upload(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	file, err := ctx.FormFile("file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	mimeType := file.Header.Get("Content-Type")

	if !types.AllowedMimeTypes[mimeType] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s%d%s", types.MediaFilePrefix, time.Now().UnixMilli(), ext)
	destination := filepath.Join(h.mediaDir, filename)

	if err := ctx.SaveUploadedFile(file, destination); err != nil {
		logging.Logger.WithError(err).Error("Failed to store uploaded file")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	record := models.MediaFile{
		UserID:       userID,
		Filename:     filename,
		OriginalName: file.Filename,
		MimeType:     mimeType,
		Size:         file.Size,
	}

	if err := h.db.WithContext(ctx.Request.Context()).Create(&record).Error; err != nil {
		// The file is already on disk; remove it before failing.
		if removeErr := os.Remove(destination); removeErr != nil {
			logging.Logger.WithError(removeErr).Warn("Failed to clean up file after error")
		}
		logging.Logger.WithError(err).Error("Failed to record uploaded file")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"fileUrl":      h.buildFileURL(ctx, filename),
		"originalName": file.Filename,
		"filename":     filename,
		"mimetype":     mimeType,
		"size":         file.Size,
	})
}

func (h *MediaHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var files []models.MediaFile

	if err := h.db.WithContext(ctx.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		respondError(ctx, err, "file", "Failed to list files")
		return
	}

	response := make([]MediaFileResponse, 0, len(files))
	for _, file := range files {
		response = append(response, MediaFileResponse{
			Filename:   file.Filename,
			URL:        h.buildFileURL(ctx, file.Filename),
			Size:       file.Size,
			UploadedAt: file.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"files": response})
}

func (h *MediaHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filename := ctx.Param("filename")

	// Reject anything outside the naming scheme before touching the
	// database or the filesystem.
	if !strings.HasPrefix(filename, types.MediaFilePrefix) || filename != filepath.Base(filename) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return
	}

	var file models.MediaFile

	if err := h.db.WithContext(ctx.Request.Context()).
		Where("filename = ?", filename).
		First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		} else {
			respondError(ctx, err, "file", "Failed to delete file")
		}
		return
	}

	if file.UserID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this file"})
		return
	}

	if err := h.db.WithContext(ctx.Request.Context()).Unscoped().Delete(&file).Error; err != nil {
		respondError(ctx, err, "file", "Failed to delete file")
		return
	}

	if err := os.Remove(filepath.Join(h.mediaDir, filename)); err != nil && !os.IsNotExist(err) {
		logging.Logger.WithError(err).Warn("Failed to remove file from disk")
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// buildFileURL derives the public URL from forwarded headers so links
// survive a reverse proxy.
func (h *MediaHandler) buildFileURL(ctx *gin.Context, filename string) string {
	scheme := ctx.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if ctx.Request.TLS != nil {
			scheme = "https"
		}
	}

	host := ctx.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = ctx.Request.Host
	}

	return fmt.Sprintf("%s://%s/uploads/%s", scheme, host, filename)
}
