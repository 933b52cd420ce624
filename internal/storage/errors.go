package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("object not found")
	ErrKeyExists    = errors.New("object already exists at this key")
	ErrInvalidKey   = errors.New("invalid storage key")
	ErrTooLarge     = errors.New("object exceeds maximum size")
	ErrAccessDenied = errors.New("access denied")
)

// StorageError records the operation and key of a failed call. Match the
// cause with errors.Is against the sentinels above.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsKeyExists(err error) bool    { return errors.Is(err, ErrKeyExists) }
func IsAccessDenied(err error) bool { return errors.Is(err, ErrAccessDenied) }
func IsInvalidKey(err error) bool   { return errors.Is(err, ErrInvalidKey) }
func IsTooLarge(err error) bool     { return errors.Is(err, ErrTooLarge) }

// validateKey rejects empty keys, absolute keys and parent references.
func validateKey(key string) error {
	if key == "" || key[0] == '/' {
		return ErrInvalidKey
	}
	for _, part := range splitKey(key) {
		if part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

func splitKey(key string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '/' || key[i] == '\\' {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	return append(parts, key[start:])
}
