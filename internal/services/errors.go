package services

import "errors"

// Typed failures returned by the service layer. Handlers map these to
// HTTP status codes; anything not in this list is an opaque storage
// failure and maps to 500.
var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrCategoryNotFound   = errors.New("packing category not found")
	ErrItemNotFound       = errors.New("packing item not found")
	ErrRitualNotFound     = errors.New("ritual not found")
	ErrStepNotFound       = errors.New("ritual step not found")
	ErrStageNotFound      = errors.New("stage not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrBookmarkNotFound   = errors.New("bookmark not found")

	ErrNotAMember        = errors.New("not a member of this trip")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrMemberNotFound    = errors.New("member not found")
	ErrAlreadyMember     = errors.New("user is already a member of this trip")
	ErrAlreadyBookmarked = errors.New("resource already bookmarked")
	ErrCannotRemoveOwner = errors.New("cannot remove trip owner")
	ErrInvalidGroupCode  = errors.New("invalid group code")
)
