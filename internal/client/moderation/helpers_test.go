package moderation

import "time"

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)
