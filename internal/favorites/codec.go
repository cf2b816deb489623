package favorites

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/five82/wallflower/internal/wallpaper"
)

// Encode serializes the collection as one JSON array. An empty collection
// encodes as "[]".
func Encode(records []wallpaper.Record) (string, error) {
	if records == nil {
		records = []wallpaper.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("%w: encode favorites: %v", wallpaper.ErrPersistenceWrite, err)
	}
	return string(data), nil
}

// Decode parses a blob written by Encode. Entries without an id and repeated
// ids are dropped; the first occurrence wins.
func Decode(blob string) ([]wallpaper.Record, error) {
	if strings.TrimSpace(blob) == "" {
		return nil, nil
	}
	var raw []wallpaper.Record
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode favorites: %v", wallpaper.ErrPersistenceRead, err)
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]wallpaper.Record, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.ID) == "" {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}
