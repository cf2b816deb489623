package unsplash

import (
	"strings"

	"github.com/five82/wallflower/internal/wallpaper"
)

// Photo mirrors the subset of the Unsplash photo object that wallflower
// renders.
type Photo struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	AltDescription string    `json:"alt_description"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Color          string    `json:"color"`
	URLs           PhotoURLs `json:"urls"`
	User           User      `json:"user"`
	Links          Links     `json:"links"`
}

// PhotoURLs lists the rendition URLs of a photo.
type PhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// User is the photographer.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Links holds the photo's web and download locations.
type Links struct {
	HTML     string `json:"html"`
	Download string `json:"download"`
}

// SearchResponse is the envelope returned by /search/photos.
type SearchResponse struct {
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Results    []Photo `json:"results"`
}

// Record converts the photo to the shared wallpaper record.
func (p Photo) Record() wallpaper.Record {
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		desc = strings.TrimSpace(p.AltDescription)
	}
	return wallpaper.Record{
		ID:           p.ID,
		ImageURL:     p.URLs.Regular,
		FullImageURL: p.URLs.Full,
		AuthorName:   strings.TrimSpace(p.User.Name),
		AuthorHandle: strings.TrimSpace(p.User.Username),
		Description:  desc,
	}
}

// Records converts photos in order.
func Records(photos []Photo) []wallpaper.Record {
	out := make([]wallpaper.Record, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.Record())
	}
	return out
}
