package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Profile resolution defaults
const (
	DefaultProfileHeader = "X-Cart-Profile"
	DefaultProfileCookie = "storefront_profile"
	MaxProfileIDLength   = 128
)

// ProfileConfig controls how a request is matched to a shopper profile
type ProfileConfig struct {
	HeaderName   string
	CookieName   string
	CookieMaxAge time.Duration
	CookieSecure bool
}

// DefaultProfileConfig returns the default profile resolution settings
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		HeaderName:   DefaultProfileHeader,
		CookieName:   DefaultProfileCookie,
		CookieMaxAge: 365 * 24 * time.Hour,
	}
}

// Profile resolves the shopper profile whose cart the request works on.
//
// The profile header wins, then the profile cookie. A request with neither
// (or with malformed values) gets a fresh profile, which is handed back as a
// cookie. The resolved ID is echoed in the profile header, stored in the gin
// context and in the request context, and added to the request logger and span.
func Profile(cfg ProfileConfig) gin.HandlerFunc {
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultProfileHeader
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultProfileCookie
	}

	return func(c *gin.Context) {
		profileID := c.GetHeader(cfg.HeaderName)
		if !ValidProfileID(profileID) {
			profileID, _ = c.Cookie(cfg.CookieName)
		}
		if !ValidProfileID(profileID) {
			profileID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, profileID, int(cfg.CookieMaxAge.Seconds()), "/", "", cfg.CookieSecure, true)
		}

		c.Set(logger.GinProfileIDKey, profileID)
		c.Header(cfg.HeaderName, profileID)

		ctx, reqLogger := logger.WithProfileID(c.Request.Context(), logger.GetGinLogger(c), profileID)
		c.Set(logger.GinLoggerKey, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(attribute.String(telemetry.SpanAttrProfileID, profileID))
		}
		c.Next()
	}
}

// GetProfileID returns the profile resolved by the Profile middleware
func GetProfileID(c *gin.Context) string {
	return c.GetString(logger.GinProfileIDKey)
}

// ValidProfileID reports whether s can name a profile: 1 to MaxProfileIDLength
// characters from letters, digits and "-_.:".
func ValidProfileID(s string) bool {
	if s == "" || len(s) > MaxProfileIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.', ch == ':':
		default:
			return false
		}
	}
	return true
}
