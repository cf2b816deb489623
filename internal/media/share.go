package media

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"

	"github.com/five82/wallflower/internal/wallpaper"
)

const shareMessage = "Check out this awesome wallpaper!"

// ShareMethod says how a wallpaper was shared.
type ShareMethod int

const (
	SharedToClipboard ShareMethod = iota
	OpenedInBrowser
)

func (m ShareMethod) String() string {
	if m == OpenedInBrowser {
		return "browser"
	}
	return "clipboard"
}

// Sharer copies a share message to the system clipboard, falling back to
// opening the image in the default browser when no clipboard is available.
type Sharer struct {
	copyText    func(string) error
	openURL     func(string) error
	unsupported bool
	log         *slog.Logger
}

// NewSharer uses the system clipboard and browser.
func NewSharer(logger *slog.Logger) *Sharer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sharer{
		copyText:    clipboard.WriteAll,
		openURL:     open.Run,
		unsupported: clipboard.Unsupported,
		log:         logger.With("component", "share"),
	}
}

// ShareTitle is the description or a default title.
func ShareTitle(rec wallpaper.Record) string {
	if d := strings.TrimSpace(rec.Description); d != "" {
		return d
	}
	return "Awesome Wallpaper"
}

// ShareText is the message placed on the clipboard.
func ShareText(rec wallpaper.Record) string {
	return shareMessage + " " + rec.DownloadURL()
}

// Share shares rec and reports which method succeeded.
func (s *Sharer) Share(rec wallpaper.Record) (ShareMethod, error) {
	link := rec.DownloadURL()
	if link == "" {
		return SharedToClipboard, fmt.Errorf("%w: record %q has no image url", wallpaper.ErrInvalidRecord, rec.ID)
	}

	var copyErr error
	if s.unsupported {
		copyErr = errors.New("clipboard unavailable")
	} else {
		copyErr = s.copyText(ShareText(rec))
	}
	if copyErr == nil {
		s.log.Info("shared to clipboard", "id", rec.ID, "title", ShareTitle(rec))
		return SharedToClipboard, nil
	}

	s.log.Debug("clipboard share failed, opening browser", "id", rec.ID, "error", copyErr)
	if err := s.openURL(link); err != nil {
		return OpenedInBrowser, fmt.Errorf("share %s: %w", rec.ID, errors.Join(copyErr, err))
	}
	s.log.Info("opened in browser", "id", rec.ID)
	return OpenedInBrowser, nil
}
