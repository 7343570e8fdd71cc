package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog services
	Users   *services.UserService
	Books   *services.BookService
	Authors *services.AuthorService
	Library *services.LibraryService

	// Change journal; /audit is not registered without it
	Audit *audit.Service

	// Health checks
	Database *database.Database

	// Logger is the base for request-scoped loggers. Defaults to a no-op logger.
	Logger *zap.Logger

	// Optional per-client throttling
	RateLimiter *auth.RateLimiter

	// HSTSMaxAge enables Strict-Transport-Security when positive
	HSTSMaxAge int

	// Application info
	Version string
}
