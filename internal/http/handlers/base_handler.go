// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uipathfinder/internal/http/middleware"
	"uipathfinder/internal/modules/history"
	"uipathfinder/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeHistoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, history.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// parseID parses a positive int64 path parameter.
func parseID(v string) (int64, bool) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// resolveCaller turns the request identity into an account row. Guests map
// onto the shared guest account.
func resolveCaller(c *gin.Context, users *user.Service) (*user.User, error) {
	token := middleware.Identity(c)
	if token == nil {
		return users.Resolve(c.Request.Context(), "", "", "")
	}
	return users.Resolve(c.Request.Context(), token.Subject, token.Email, token.Name)
}
