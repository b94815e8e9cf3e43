package handlers

import (
	"net"
	"net/http"
	"strings"

	"github.com/devpatel-io/inklens/internal/api/middleware"
	"github.com/devpatel-io/inklens/internal/utils"
	"github.com/google/uuid"
)

// clientIP prefers the first X-Forwarded-For hop so sessions record the
// real client behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// requireUser pulls the authenticated user ID out of the context, writing
// the unauthorized response itself when absent.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
		return uuid.Nil, false
	}
	return userID, true
}
