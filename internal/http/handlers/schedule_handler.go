// README: Schedule generation handlers (fan-out endpoint plus smoke tests).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"uipathfinder/internal/modules/schedule"
)

// generateTimeout bounds one full fan-out, including routing lookups.
const generateTimeout = 2 * time.Minute

type ScheduleHandler struct {
	schedule *schedule.Service
}

func NewScheduleHandler(svc *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{schedule: svc}
}

type generateReq struct {
	UserRequest    string `json:"userRequest"`
	Date           string `json:"date"`
	HomeAddress    string `json:"homeAddress"`
	MealPreference string `json:"mealPreference"`
	SleepAtLibrary bool   `json:"sleepAtLibrary"`
}

// Generate handles POST /api/llm-schedules. The response always carries one
// option per configured model, even when every model failed.
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.UserRequest = strings.TrimSpace(req.UserRequest)
	if req.UserRequest == "" {
		writeError(c, http.StatusBadRequest, "missing userRequest")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	options := h.schedule.Generate(ctx, schedule.GenerateCommand{
		UserRequest:    req.UserRequest,
		TargetDate:     req.Date,
		HomeAddress:    req.HomeAddress,
		MealPreference: req.MealPreference,
		SleepAtLibrary: req.SleepAtLibrary,
	})

	writeJSON(c, http.StatusOK, gin.H{"success": true, "options": options})
}

// Hello handles GET /api/hello, a liveness probe the frontend pings on load.
func (h *ScheduleHandler) Hello(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"message": "Hello from UIPathFinder API"})
}

// FireworksTest handles GET /api/fireworks-test: one real completion against
// the first registered model, interpreted the same way as production traffic.
func (h *ScheduleHandler) FireworksTest(c *gin.Context) {
	targets := schedule.DefaultTargets()

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	res, err := h.schedule.GenerateSingle(ctx, targets[0], schedule.GenerateCommand{
		UserRequest: "Plan a short afternoon of studying on campus.",
		TargetDate:  time.Now().Format("2006-01-02"),
	})
	if err != nil {
		writeJSON(c, http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	writeJSON(c, http.StatusOK, gin.H{
		"success": true,
		"status":  res.Status,
		"reason":  res.Data.Reason,
		"options": res.Data.PathResult,
	})
}
