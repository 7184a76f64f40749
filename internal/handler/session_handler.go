package handler

import (
	"net/http"

	"votebox/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionResponse carries a freshly minted session.
type SessionResponse struct {
	SessionID string `json:"session_id" example:"5c1b0c8e-43a4-4b0e-9a51-6f1e0f3b0d2e"`
	Token     string `json:"token,omitempty"`
}

// CreateSession godoc
// @Summary      Mint a session
// @Description  Returns a new random session id and, when signing is configured, a bearer token wrapping it. Clients may also generate their own id and send it in X-Session-ID.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  SessionResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	resp := SessionResponse{SessionID: uuid.NewString()}

	if len(h.secret) > 0 {
		token, err := jwt.GenerateSessionToken(resp.SessionID, h.secret, h.tokenTTL)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Token = token
	}

	c.JSON(http.StatusCreated, resp)
}
