package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/wallflower/internal/appearance"
	"github.com/five82/wallflower/internal/browse"
	"github.com/five82/wallflower/internal/media"
	"github.com/five82/wallflower/internal/wallpaper"
)

// Messages

type fetchResultMsg browse.Result

type hostProbeMsg struct {
	mode   appearance.Mode
	source string
	ok     bool
}

type appearanceMsg struct{}

type favoritesChangedMsg struct{}

type downloadDoneMsg struct {
	id   string
	path string
	err  error
}

type shareDoneMsg struct {
	method media.ShareMethod
	err    error
}

type clearFlashMsg struct {
	id int
}

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashError
)

type flash struct {
	text string
	kind flashKind
	id   int
}

// Commands

func (m Model) fetchCmd(req browse.Request) tea.Cmd {
	ctx, src, perPage := m.ctx, m.source, m.perPage
	return func() tea.Msg {
		if src == nil {
			return fetchResultMsg(browse.Result{Request: req, Err: wallpaper.ErrNetwork})
		}
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		return fetchResultMsg(req.Fetch(ctx, src, perPage))
	}
}

func hostProbeCmd(probe func() (appearance.Mode, string, bool)) tea.Cmd {
	if probe == nil {
		return nil
	}
	return func() tea.Msg {
		mode, source, ok := probe()
		return hostProbeMsg{mode: mode, source: source, ok: ok}
	}
}

func downloadCmd(ctx context.Context, d Downloader, rec wallpaper.Record) tea.Cmd {
	return func() tea.Msg {
		path, err := d.Download(ctx, rec)
		return downloadDoneMsg{id: rec.ID, path: path, err: err}
	}
}

func shareCmd(s Sharer, rec wallpaper.Record) tea.Cmd {
	return func() tea.Msg {
		method, err := s.Share(rec)
		return shareDoneMsg{method: method, err: err}
	}
}
