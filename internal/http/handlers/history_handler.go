// README: History handlers: save, list, fetch and delete generation runs.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"uipathfinder/internal/modules/history"
	"uipathfinder/internal/modules/usage"
	"uipathfinder/internal/modules/user"
)

type HistoryHandler struct {
	users     *user.Service
	histories *history.Service
	usage     *usage.Service
}

func NewHistoryHandler(users *user.Service, histories *history.Service, usageSvc *usage.Service) *HistoryHandler {
	return &HistoryHandler{users: users, histories: histories, usage: usageSvc}
}

type createHistoryReq struct {
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle"`
	UserRequest   string          `json:"userRequest"`
	RequestedDate string          `json:"requestedDate"`
	PathOptions   json.RawMessage `json:"pathOptions"`
	Metadata      json.RawMessage `json:"metadata"`
}

// Create handles POST /api/histories.
func (h *HistoryHandler) Create(c *gin.Context) {
	var req createHistoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.UserRequest = strings.TrimSpace(req.UserRequest)
	if req.UserRequest == "" || len(req.PathOptions) == 0 {
		writeError(c, http.StatusBadRequest, "missing userRequest or pathOptions")
		return
	}

	u, err := resolveCaller(c, h.users)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	saved, err := h.histories.Save(c.Request.Context(), history.SaveCommand{
		UserID:      u.ID,
		Title:       strings.TrimSpace(req.Title),
		Subtitle:    strings.TrimSpace(req.Subtitle),
		UserRequest: req.UserRequest,
		TargetDate:  req.RequestedDate,
		PathOptions: req.PathOptions,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeHistoryError(c, err)
		return
	}

	// Usage counters ride along with every save; a counter failure never
	// fails the save itself.
	if h.usage != nil {
		if err := h.usage.RecordFromJSON(c.Request.Context(), u.ID, req.PathOptions); err != nil {
			log.Printf("building usage update failed for user %d: %v", u.ID, err)
		}
	}

	writeJSON(c, http.StatusCreated, gin.H{"success": true, "history": saved})
}

// List handles GET /api/histories.
func (h *HistoryHandler) List(c *gin.Context) {
	u, err := resolveCaller(c, h.users)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.histories.List(c.Request.Context(), u.ID, limit, offset)
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "histories": items})
}

// Get handles GET /api/histories/:id.
func (h *HistoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid history id")
		return
	}

	u, err := resolveCaller(c, h.users)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	item, err := h.histories.Get(c.Request.Context(), id, u.ID)
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "history": item})
}

// Delete handles DELETE /api/histories/:id.
func (h *HistoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid history id")
		return
	}

	u, err := resolveCaller(c, h.users)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.histories.Delete(c.Request.Context(), id, u.ID); err != nil {
		writeHistoryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}
