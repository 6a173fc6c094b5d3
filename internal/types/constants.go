package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// MediaFilePrefix is the on-disk naming scheme for uploaded files.
// Ownership is enforced through MediaFile rows, not this prefix.
const MediaFilePrefix = "media_"

// MaxUploadSize is the ceiling enforced by the upload middleware.
const MaxUploadSize = 50 << 20 // 50 MB

// MaxPageSize caps the limit query parameter on paginated listings.
const MaxPageSize = 100

// AllowedMimeTypes is the upload allow-list: images, video, audio,
// office documents, plain text/CSV and archives.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,

	"video/mp4":       true,
	"video/mpeg":      true,
	"video/quicktime": true,
	"video/webm":      true,

	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/ogg":  true,
	"audio/mp4":  true,

	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,

	"text/plain": true,
	"text/csv":   true,

	"application/zip":             true,
	"application/x-rar-compressed": true,
	"application/x-7z-compressed":  true,
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
