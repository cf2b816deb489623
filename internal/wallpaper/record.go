// Package wallpaper defines the record shared by the photo client, the
// favorites store and the UI.
package wallpaper

import "strings"

// Record is one displayed or saved wallpaper.
//
// AddedAt is zero until the record becomes a favorite and is never changed
// afterwards.
type Record struct {
	ID           string `json:"id"`
	ImageURL     string `json:"imageUrl"`
	FullImageURL string `json:"fullImageUrl"`
	AuthorName   string `json:"authorName,omitempty"`
	AuthorHandle string `json:"authorHandle,omitempty"`
	Description  string `json:"description,omitempty"`
	AddedAt      int64  `json:"addedAt,omitempty"`
}

// Valid reports whether the record carries the fields needed to display it.
func (r Record) Valid() bool {
	return strings.TrimSpace(r.ID) != "" && strings.TrimSpace(r.ImageURL) != ""
}

// Validate returns ErrInvalidRecord when the record cannot be displayed.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("missing id")
	}
	if strings.TrimSpace(r.ImageURL) == "" {
		return invalid("record " + r.ID + " missing image url")
	}
	return nil
}

// DownloadURL prefers the full resolution image and falls back to the
// display resolution.
func (r Record) DownloadURL() string {
	if u := strings.TrimSpace(r.FullImageURL); u != "" {
		return u
	}
	return strings.TrimSpace(r.ImageURL)
}

// Title returns the description or a placeholder.
func (r Record) Title() string {
	if d := strings.TrimSpace(r.Description); d != "" {
		return d
	}
	return "Untitled Wallpaper"
}

// Author returns the photographer's name or a placeholder.
func (r Record) Author() string {
	if n := strings.TrimSpace(r.AuthorName); n != "" {
		return n
	}
	return "Unknown Photographer"
}

// Handle returns the photographer's handle prefixed with @.
func (r Record) Handle() string {
	h := strings.TrimPrefix(strings.TrimSpace(r.AuthorHandle), "@")
	if h == "" {
		h = "unknown"
	}
	return "@" + h
}

// Displayable drops records that cannot be rendered. The input slice is not
// modified.
func Displayable(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}
