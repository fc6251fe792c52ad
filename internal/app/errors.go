package service

import "errors"

// Sentinel kinds for service lifecycle errors.
var (
	ErrStartService = errors.New("failed to start service")
	ErrNotStarted   = errors.New("service not started")
)
