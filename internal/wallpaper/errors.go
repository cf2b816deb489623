package wallpaper

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers non-2xx responses and transport failures from the
	// photo service.
	ErrNetwork = errors.New("network failure")
	// ErrPersistenceRead is reported when the saved favorites cannot be read
	// or decoded.
	ErrPersistenceRead = errors.New("persistence read failure")
	// ErrPersistenceWrite is reported when saving favorites fails.
	ErrPersistenceWrite = errors.New("persistence write failure")
	// ErrInvalidRecord marks a payload missing required display fields.
	ErrInvalidRecord = errors.New("invalid record")
)

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, reason)
}
