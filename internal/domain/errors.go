package domain

import "errors"

// Sentinel errors for event operations. Wrap them with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrUploadFailed      = errors.New("upload failed")
	ErrPersistenceFailed = errors.New("persistence failed")
	ErrInternal          = errors.New("internal error")

	// ErrDuplicateSlug is returned by repositories when the slug is already taken.
	ErrDuplicateSlug = errors.New("slug already exists")
)
