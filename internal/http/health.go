package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports whether the store answers and carries every
// catalog table.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status serves GET /health and GET /ping.
func (h *HealthController) Status(c *gin.Context) {
	checks := map[string]string{}
	healthy := true

	if h.db == nil {
		checks["database"] = "not configured"
	} else {
		db, schema := h.checkStore(c.Request.Context())
		checks["database"] = db
		if schema != "" {
			checks["schema"] = schema
		}
		healthy = db == "ok" && (schema == "" || schema == "ok")
	}

	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// checkStore pings the store and, when it answers, looks for missing tables.
func (h *HealthController) checkStore(ctx context.Context) (db, schema string) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return "error: " + err.Error(), ""
	}
	if missing := h.db.MissingTables(); len(missing) > 0 {
		return "ok", "missing tables: " + strings.Join(missing, ", ")
	}
	return "ok", "ok"
}
