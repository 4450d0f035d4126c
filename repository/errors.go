// Package repository wraps the remote record store. Every error leaving
// this package is normalized so callers never see the driver's internal
// error shapes.
package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// normalizeError maps driver errors onto the package taxonomy. Unknown
// errors keep their message but are wrapped so the operation is named.
func normalizeError(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 13 Unauthorized, 18 AuthenticationFailed, 8000 AtlasError.
		switch cmdErr.Code {
		case 13, 18, 8000:
			return fmt.Errorf("%w: %s", ErrPermissionDenied, cmdErr.Message)
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
