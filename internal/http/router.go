package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/schemas"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	registerValidators(log)

	router := gin.New()
	router.Use(RequestIDMiddleware(log))
	router.Use(AccessLogMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.HSTSMaxAge > 0 {
		router.Use(auth.StrictTransportSecurityMiddleware(cfg.HSTSMaxAge))
	}
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}

	router.GET("/", Home)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Status)

	users := NewUsersController(cfg.Users)
	router.POST("/user/new", users.Create)
	router.GET("/users", users.List)
	router.GET("/user/details", users.Get)
	router.PUT("/user/update", users.Update)
	router.PUT("/user/update_user/:id_user/:feature/:data", users.UpdateField)
	router.DELETE("/user/delete", users.Delete)

	books := NewBooksController(cfg.Books)
	router.POST("/book/new", books.Create)
	router.GET("/books", books.List)
	router.GET("/book/details", books.Get)
	router.PUT("/book/update", books.Update)
	router.DELETE("/book/delete", books.Delete)

	authors := NewAuthorsController(cfg.Authors)
	router.POST("/author/new", authors.Create)
	router.GET("/authors", authors.List)
	router.GET("/author/details", authors.Get)
	router.PUT("/author/update", authors.Update)
	router.DELETE("/author/delete", authors.Delete)

	library := NewLibraryController(cfg.Library)
	router.POST("/user/library", library.AddBook)
	router.GET("/user/library", library.Books)
	router.DELETE("/user/library", library.RemoveBook)
	router.POST("/book/author", library.AddAuthor)
	router.GET("/book/authors", library.Authors)
	router.DELETE("/book/author", library.RemoveAuthor)

	if cfg.Audit != nil {
		router.GET("/audit", NewAuditController(cfg.Audit).List)
	}

	return router
}

// registerValidators teaches gin's validator the custom request tags.
// Registration is idempotent, so building several routers is fine.
func registerValidators(log *zap.Logger) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := schemas.RegisterValidators(v); err != nil {
		log.Error("failed to register request validators", zap.Error(err))
	}
}
