package handler

import (
	"net/http"
	"time"

	"votebox/backend/internal/auth"
	"votebox/backend/internal/hub"
	"votebox/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler serves the HTTP API on top of the service layer.
type Handler struct {
	svc      *service.Service
	hub      *hub.Hub
	secret   []byte
	tokenTTL time.Duration
}

// New creates a Handler. secret signs session tokens; when empty, only raw
// session headers are accepted.
func New(svc *service.Service, h *hub.Hub, secret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{svc: svc, hub: h, secret: secret, tokenTTL: tokenTTL}
}

// region --- DTOs ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
	Code  string `json:"code" example:"NOT_FOUND"`
}

// MessageResponse is returned by mutations that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message" example:"Left room successfully"`
}

// endregion

// Routes registers the API under /api/v1.
func (h *Handler) Routes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/sessions", h.CreateSession)

		session := auth.SessionMiddleware(h.secret)

		userRoutes := apiV1.Group("")
		userRoutes.Use(session)
		{
			userRoutes.POST("/users", h.CreateUser)
			userRoutes.GET("/me", h.GetMe)
			userRoutes.PUT("/me/name", h.ChangeName)
			userRoutes.PUT("/me/vote", h.Vote)
			userRoutes.DELETE("/me", h.DeleteMe)
		}

		roomRoutes := apiV1.Group("/rooms")
		roomRoutes.Use(session)
		{
			roomRoutes.POST("", h.CreateRoom)
			roomRoutes.POST("/join", h.JoinRoom)
			roomRoutes.POST("/leave", h.LeaveRoom)
			roomRoutes.POST("/code", h.RegenerateRoomCode)
			roomRoutes.DELETE("/members/:userID", h.KickMember)
			roomRoutes.GET("/events", h.RoomEvents)
		}
	}
}

var statusByKind = map[service.Kind]int{
	service.KindNotFound:   http.StatusNotFound,
	service.KindValidation: http.StatusBadRequest,
	service.KindForbidden:  http.StatusForbidden,
	service.KindConflict:   http.StatusConflict,
}

// respondError writes the status matching err's kind. Anything unclassified,
// and corruption, becomes a logged 500.
func respondError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled internal server error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected error occurred", Code: string(kind)})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: string(kind)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: string(service.KindValidation)})
}
