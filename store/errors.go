package store

import "github.com/pkg/errors"

var (
	// ErrUnauthorized: the operation needs an authenticated actor and got
	// none.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden: authenticated actor lacks ownership or privilege.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound covers both missing rows and rows the actor is not
	// allowed to know exist. Handlers must never distinguish the two.
	ErrNotFound = errors.New("record not found")

	// ErrEmptyComment: comment content is empty after trimming.
	ErrEmptyComment = errors.New("comment content is required")

	// ErrInvalidParent: the parent comment is missing, belongs to another
	// blog, or is itself a reply.
	ErrInvalidParent = errors.New("invalid parent comment")

	// ErrInvalidRole: role value outside {SUPER_ADMIN, AUTHOR}.
	ErrInvalidRole = errors.New("invalid role")

	// ErrSelfDelete: a user may never delete their own account.
	ErrSelfDelete = errors.New("cannot delete yourself")
)
