package service

import "errors"

// Kind classifies a service error for callers that need to react to it,
// such as the HTTP layer choosing a status code.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION"
	KindForbidden  Kind = "FORBIDDEN"
	KindConflict   Kind = "CONFLICT"
	KindCorruption Kind = "CORRUPTION"
	KindInternal   Kind = "INTERNAL"
)

// Error is a classified, user-presentable error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUserNotFound     = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrRoomNotFound     = &Error{Kind: KindNotFound, Message: "room not found"}
	ErrTargetNotInRoom  = &Error{Kind: KindNotFound, Message: "user not found in room"}
	ErrSessionRequired  = &Error{Kind: KindValidation, Message: "session id is required"}
	ErrInvalidName      = &Error{Kind: KindValidation, Message: "name must be between 2 and 64 characters"}
	ErrInvalidRoomCode  = &Error{Kind: KindValidation, Message: "room code must be 6 uppercase letters or digits"}
	ErrNotInRoom        = &Error{Kind: KindForbidden, Message: "you are not in a room"}
	ErrNotHost          = &Error{Kind: KindForbidden, Message: "you are not the host"}
	ErrCannotTargetSelf = &Error{Kind: KindForbidden, Message: "you cannot remove yourself"}
	ErrUserExists       = &Error{Kind: KindConflict, Message: "a user already exists for this session"}

	// ErrCorruptRoomRef means a user points at a room that does not exist.
	// It is always wrapped with the ids involved.
	ErrCorruptRoomRef = &Error{Kind: KindCorruption, Message: "room referenced by user does not exist"}
)

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
