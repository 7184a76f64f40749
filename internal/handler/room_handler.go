package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"votebox/backend/internal/auth"
	"votebox/backend/internal/hub"
	"votebox/backend/internal/roomcode"
	"votebox/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// JoinRoomInput defines the body of a join.
type JoinRoomInput struct {
	Code string `json:"code" binding:"required,len=6" example:"K7QX3P"`
}

// RoomCodeResponse carries a room code.
type RoomCodeResponse struct {
	Code string `json:"code" example:"K7QX3P"`
}

// endregion

// CreateRoom godoc
// @Summary      Create a room
// @Description  Creates a room with a fresh code and moves the caller into it as host.
// @Tags         rooms
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Success      201  {object}  RoomCodeResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	code, err := h.svc.CreateRoom(c.Request.Context(), auth.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RoomCodeResponse{Code: code})
}

// JoinRoom godoc
// @Summary      Join a room by code
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Param        input body JoinRoomInput true "Room code"
// @Success      200  {object}  RoomCodeResponse
// @Failure      400  {object}  ErrorResponse "Malformed room code"
// @Failure      404  {object}  ErrorResponse "User or room not found"
// @Router       /rooms/join [post]
func (h *Handler) JoinRoom(c *gin.Context) {
	var input JoinRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if !roomcode.WellFormed(input.Code) {
		respondError(c, service.ErrInvalidRoomCode)
		return
	}

	code, err := h.svc.JoinRoom(c.Request.Context(), auth.SessionID(c), input.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoomCodeResponse{Code: code})
}

// LeaveRoom godoc
// @Summary      Leave the current room
// @Description  Leaves the caller's room. The room is deleted when its last member leaves; otherwise the next member by join time becomes host.
// @Tags         rooms
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /rooms/leave [post]
func (h *Handler) LeaveRoom(c *gin.Context) {
	if err := h.svc.LeaveRoom(c.Request.Context(), auth.SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Left room successfully"})
}

// RegenerateRoomCode godoc
// @Summary      Regenerate the room code (Host only)
// @Tags         rooms
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Success      200  {object}  RoomCodeResponse
// @Failure      403  {object}  ErrorResponse "Not in a room or not the host"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /rooms/code [post]
func (h *Handler) RegenerateRoomCode(c *gin.Context) {
	code, err := h.svc.RegenerateRoomCode(c.Request.Context(), auth.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoomCodeResponse{Code: code})
}

// KickMember godoc
// @Summary      Remove a member from the room (Host only)
// @Tags         rooms
// @Produce      json
// @Param        X-Session-ID header string false "Session id"
// @Param        userID path int true "User ID of member to remove"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the host, or targeting yourself"
// @Failure      404  {object}  ErrorResponse "Member not found in this room"
// @Router       /rooms/members/{userID} [delete]
func (h *Handler) KickMember(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil || targetID == 0 {
		badRequest(c, errors.New("userID must be a positive integer"))
		return
	}

	if err := h.svc.DeleteUserFromRoom(c.Request.Context(), auth.SessionID(c), uint(targetID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Member removed successfully"})
}

// RoomEvents godoc
// @Summary      Stream room state
// @Description  Server-sent events. Sends the caller's state immediately and again after every change to their room. The stream ends once the caller is no longer in that room.
// @Tags         rooms
// @Produce      text/event-stream
// @Param        X-Session-ID header string false "Session id"
// @Success      200  {object}  service.UserAndRoom
// @Failure      403  {object}  ErrorResponse "Not in a room"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /rooms/events [get]
func (h *Handler) RoomEvents(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := auth.SessionID(c)

	state, err := h.svc.GetUserAndRoom(ctx, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if state.User == nil {
		respondError(c, service.ErrUserNotFound)
		return
	}
	if state.Room == nil {
		respondError(c, service.ErrNotInRoom)
		return
	}

	roomID := state.Room.ID
	client := hub.NewClient()
	h.hub.Subscribe(roomID, client)
	defer h.hub.Unsubscribe(roomID, client)

	c.SSEvent("state", state)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case _, ok := <-client:
			if !ok {
				return false
			}
			state, err := h.svc.GetUserAndRoom(ctx, sessionID)
			if err != nil {
				c.SSEvent("error", ErrorResponse{Error: "Failed to load room", Code: string(service.KindOf(err))})
				return false
			}
			c.SSEvent("state", state)
			return state.Room != nil && state.Room.ID == roomID
		case <-ctx.Done():
			return false
		}
	})
}
