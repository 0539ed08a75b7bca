package domain

import "errors"

// Error kinds. Every Error unwraps to exactly one of these.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

var (
	ErrUserNotFound    = NewError(ErrNotFound, "user not found")
	ErrPostNotFound    = NewError(ErrNotFound, "post not found")
	ErrCommentNotFound = NewError(ErrNotFound, "comment not found")

	ErrNotCommentAuthor = NewError(ErrForbidden, "only the comment author can change this comment")
	ErrNotPostAuthor    = NewError(ErrForbidden, "only the post author can change this post")

	ErrSelfFollow          = NewError(ErrInvalidArgument, "cannot follow yourself")
	ErrSelfRemoveFollower  = NewError(ErrInvalidArgument, "cannot remove yourself as a follower")
	ErrInvalidID           = NewError(ErrInvalidArgument, "malformed id")
	ErrEmptyNotificationID = NewError(ErrInvalidArgument, "notification id is required")
	ErrProfileExists       = NewError(ErrInvalidArgument, "profile already exists")
	ErrEmailTaken          = NewError(ErrInvalidArgument, "email already in use")
	ErrUnsupportedImage    = NewError(ErrInvalidArgument, "only png and jpeg images are allowed")
	ErrImageTooLarge       = NewError(ErrInvalidArgument, "image must be 2MB or smaller")

	ErrStoreUnavailable = NewError(ErrUpstreamUnavailable, "store unavailable")
	ErrBlobUnavailable  = NewError(ErrUpstreamUnavailable, "blob store unavailable")
)
