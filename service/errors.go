package services

import (
	"errors"

	daoredis "es-server/dao/redis"
)

var (
	// ErrMissingCredential means no API token is configured; nothing may be fetched.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrNotReady means the selection lacks a field the queries need.
	ErrNotReady = errors.New("selection not ready")

	ErrSessionNotFound = daoredis.ErrSessionNotFound

	ErrInvalidSelection = errors.New("invalid selection")
)

// NotReadyError is ErrNotReady carrying the warnings gathered before the
// selection turned out incomplete, such as a failed location fetch.
type NotReadyError struct {
	Warnings []string
}

func (e *NotReadyError) Error() string {
	return ErrNotReady.Error()
}

func (e *NotReadyError) Unwrap() error {
	return ErrNotReady
}
