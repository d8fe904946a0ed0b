// README: Building usage handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uipathfinder/internal/modules/usage"
	"uipathfinder/internal/modules/user"
)

type UsageHandler struct {
	users *user.Service
	usage *usage.Service
}

func NewUsageHandler(users *user.Service, usageSvc *usage.Service) *UsageHandler {
	return &UsageHandler{users: users, usage: usageSvc}
}

// List handles GET /api/building-usage: the caller's counters, most visited first.
func (h *UsageHandler) List(c *gin.Context) {
	u, err := resolveCaller(c, h.users)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	items, err := h.usage.List(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "usage": items})
}
