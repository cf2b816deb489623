package wallpaper

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{"complete", Record{ID: "a", ImageURL: "https://img/a"}, false},
		{"missing id", Record{ImageURL: "https://img/a"}, true},
		{"blank id", Record{ID: "  ", ImageURL: "https://img/a"}, true},
		{"missing image", Record{ID: "a"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRecord) {
					t.Fatalf("Validate() = %v, want ErrInvalidRecord", err)
				}
				if tc.rec.Valid() {
					t.Fatalf("Valid() = true, want false")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestDisplayableSkipsInvalid(t *testing.T) {
	in := []Record{
		{ID: "a", ImageURL: "u1"},
		{ID: "", ImageURL: "u2"},
		{ID: "c"},
		{ID: "d", ImageURL: "u4"},
	}
	got := Displayable(in)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "d" {
		t.Fatalf("Displayable = %+v, want [a d]", got)
	}
	if len(in) != 4 {
		t.Fatalf("input mutated")
	}
}

func TestPlaceholders(t *testing.T) {
	var r Record
	if got := r.Title(); got != "Untitled Wallpaper" {
		t.Fatalf("Title = %q", got)
	}
	if got := r.Author(); got != "Unknown Photographer" {
		t.Fatalf("Author = %q", got)
	}
	if got := r.Handle(); got != "@unknown" {
		t.Fatalf("Handle = %q", got)
	}
	r.AuthorHandle = "@jane"
	if got := r.Handle(); got != "@jane" {
		t.Fatalf("Handle = %q, want @jane", got)
	}
}

func TestDownloadURLFallsBack(t *testing.T) {
	r := Record{ImageURL: "regular"}
	if got := r.DownloadURL(); got != "regular" {
		t.Fatalf("DownloadURL = %q, want regular", got)
	}
	r.FullImageURL = "full"
	if got := r.DownloadURL(); got != "full" {
		t.Fatalf("DownloadURL = %q, want full", got)
	}
}
