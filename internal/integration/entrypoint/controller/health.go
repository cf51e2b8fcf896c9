// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports the availability of the API and its
// backing services.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. The
// cache checker may be nil when the API runs without Redis.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests. The endpoint always answers 200;
// degraded dependencies are reported in the body so probes can decide.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  checkStatus(h.dbHealthChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.cacheHealthChecker != nil {
		response.Cache = checkStatus(h.cacheHealthChecker)
	}

	c.JSON(http.StatusOK, response)
}

func checkStatus(checker func() bool) string {
	if checker != nil && checker() {
		return "connected"
	}
	return "disconnected"
}
