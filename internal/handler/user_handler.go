package handler

import (
	"net/http"

	"votebox/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// ChangeNameInput defines the body of a rename.
type ChangeNameInput struct {
	Name string `json:"name" binding:"required,min=2,max=64" example:"Ada"`
}

// VoteInput defines the body of a vote. VotedYes is a pointer so that an
// explicit false passes the required check.
type VoteInput struct {
	VotedYes *bool `json:"voted_yes" binding:"required" example:"true"`
}

// endregion

// CreateUser godoc
// @Summary      Create the session's user
// @Description  Creates a user with a random display name for the calling session.
// @Tags         users
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Success      201  {object}  service.UserView
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "A user already exists for this session"
// @Router       /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	user, err := h.svc.CreateUser(c.Request.Context(), auth.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetMe godoc
// @Summary      Get the caller and their room
// @Description  Returns the caller's user record and, if they are in a room, the room with its members and aggregate vote. Other members' votes are never included.
// @Tags         users
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Success      200  {object}  service.UserAndRoom
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	state, err := h.svc.GetUserAndRoom(c.Request.Context(), auth.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ChangeName godoc
// @Summary      Rename the caller
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Param        input body ChangeNameInput true "New name"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /me/name [put]
func (h *Handler) ChangeName(c *gin.Context) {
	var input ChangeNameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.ChangeName(c.Request.Context(), auth.SessionID(c), input.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Name changed successfully"})
}

// Vote godoc
// @Summary      Set the caller's vote
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Param        input body VoteInput true "Vote"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /me/vote [put]
func (h *Handler) Vote(c *gin.Context) {
	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.Vote(c.Request.Context(), auth.SessionID(c), *input.VotedYes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Vote recorded"})
}

// DeleteMe godoc
// @Summary      Delete the caller
// @Tags         users
// @Param        X-Session-ID header string false "Session id"
// @Success      204
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /me [delete]
func (h *Handler) DeleteMe(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), auth.SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

