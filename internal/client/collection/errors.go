package collection

import "errors"

var (
	ErrNotLoaded         = errors.New("collection not loaded yet")
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrStaleResponse     = errors.New("response superseded by a newer load")
	ErrSearchUnsupported = errors.New("collection does not support search")
	ErrNotFound          = errors.New("item not found")
	ErrUnknownField      = errors.New("unknown search field")
)
