// Package kvstore provides the durable key-value storage that favorites are
// saved to. Several backends share one small contract: a key maps to an
// opaque string blob that survives restarts.
package kvstore

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Gateway is the durable key-value contract.
type Gateway interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend selects a Gateway implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Backends lists the accepted backend names.
func Backends() []Backend {
	return []Backend{BackendFile, BackendBolt, BackendSQLite, BackendMemory}
}

// ParseBackend validates a backend name. Empty selects the file backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendFile, nil
	case BackendFile, BackendBolt, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (want file, bolt, sqlite or memory)", s)
	}
}

// String implements pflag.Value.
func (b *Backend) String() string {
	if b == nil {
		return ""
	}
	return string(*b)
}

// Set implements pflag.Value.
func (b *Backend) Set(s string) error {
	parsed, err := ParseBackend(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Type implements pflag.Value.
func (b *Backend) Type() string {
	return "backend"
}

// Open builds the Gateway for backend, storing its data under dir.
func Open(backend Backend, dir string) (Gateway, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(filepath.Join(dir, "kv"))
	case BackendBolt:
		return NewBoltStore(filepath.Join(dir, "wallflower.bolt"))
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "wallflower.db"))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func checkKey(key string) error {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
