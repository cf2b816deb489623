package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/wallflower/internal/browse"
	"github.com/five82/wallflower/internal/media"
	"github.com/five82/wallflower/internal/wallpaper"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.detail != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		m.appearance.Toggle()
		m.syncMode()
		return m, nil
	case key.Matches(msg, m.keys.CyclePalette):
		m.cyclePalette()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.screen == screenBrowse {
			m.screen = screenFavorites
			m.ensureFavoriteVisible()
			return m, nil
		}
		m.screen = screenBrowse
		m.ensureVisible()
		cmd := m.maybeLoadMore()
		return m, cmd
	}

	if m.screen == screenFavorites {
		return m.handleFavoritesKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		req, ok := m.pager.Submit(m.search.Value())
		if !ok {
			return m, nil
		}
		cmd := m.issue(req)
		return m, cmd
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.layout()
	n := m.pager.Len()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.ensureVisible()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		req, ok := m.pager.ExitSearch()
		if !ok {
			return m, nil
		}
		m.search.SetValue("")
		cmd := m.issue(req)
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		cmd := m.reload()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		switch {
		case m.selected == carouselFocus:
		case m.selected < 2 && l.carousel:
			m.selected = carouselFocus
		case m.selected < 2:
			m.offset = 0
		default:
			m.selected -= 2
		}

	case key.Matches(msg, m.keys.Down):
		switch {
		case n == 0:
		case m.selected == carouselFocus:
			m.selected = 0
		case m.selected+2 < n:
			m.selected += 2
		case m.selected/2 < (n-1)/2:
			m.selected = n - 1
		}

	case key.Matches(msg, m.keys.Left):
		if m.selected == carouselFocus {
			m.carousel = m.carousel.Prev(len(m.featured()))
		} else if m.selected%2 == 1 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Right):
		if m.selected == carouselFocus {
			m.carousel = m.carousel.Next(len(m.featured()))
		} else if m.selected%2 == 0 && m.selected+1 < n {
			m.selected++
		}

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		if l.carousel {
			m.selected = carouselFocus
		}
		m.offset = 0

	case key.Matches(msg, m.keys.Bottom):
		if n > 0 {
			m.selected = n - 1
		}

	default:
		rec, ok := m.selectedRecord()
		if !ok {
			return m, nil
		}
		return m.handleRecordKey(msg, rec)
	}

	m.ensureVisible()
	cmd := m.maybeLoadMore()
	return m, cmd
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.favorites.Len()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.favSelected > 0 {
			m.favSelected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.favSelected < n-1 {
			m.favSelected++
		}
	case key.Matches(msg, m.keys.Top):
		m.favSelected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.favSelected = maxInt(0, n-1)
	case key.Matches(msg, m.keys.Escape):
		m.screen = screenBrowse
		m.ensureVisible()
		cmd := m.maybeLoadMore()
		return m, cmd
	case key.Matches(msg, m.keys.Remove):
		rec, ok := m.selectedFavorite()
		if !ok {
			return m, nil
		}
		m.favorites.Remove(rec.ID)
		m.ensureFavoriteVisible()
		cmd := m.setFlash("Removed from favorites", flashInfo)
		return m, cmd
	default:
		rec, ok := m.selectedFavorite()
		if !ok {
			return m, nil
		}
		return m.handleRecordKey(msg, rec)
	}

	m.ensureFavoriteVisible()
	return m, nil
}

// handleRecordKey runs the actions shared by the grid, the favorites list
// and the detail view.
func (m Model) handleRecordKey(msg tea.KeyMsg, rec wallpaper.Record) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		m.detail = &rec
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		m.favorites.Toggle(rec)
		m.ensureFavoriteVisible()
		return m, nil
	case key.Matches(msg, m.keys.Share):
		cmd := m.share(rec)
		return m, cmd
	case key.Matches(msg, m.keys.Download):
		cmd := m.download(rec)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.detail = nil
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		m.appearance.Toggle()
		m.syncMode()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	}
	return m.handleRecordKey(msg, *m.detail)
}

// reload fetches the first page of the current mode again.
func (m *Model) reload() tea.Cmd {
	st := m.pager.State()
	if st.Mode == browse.ModeSearch {
		if req, ok := m.pager.Submit(st.Query); ok {
			return m.issue(req)
		}
	}
	return m.issue(m.pager.Start())
}

func (m *Model) download(rec wallpaper.Record) tea.Cmd {
	if m.downloader == nil {
		return nil
	}
	m.log.Info("download requested", "id", rec.ID)
	return tea.Batch(
		m.setFlash("Downloading wallpaper...", flashInfo),
		downloadCmd(m.ctx, m.downloader, rec),
	)
}

func (m *Model) share(rec wallpaper.Record) tea.Cmd {
	if m.sharer == nil {
		return nil
	}
	return shareCmd(m.sharer, rec)
}

func (m Model) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("download failed", "id", msg.id, "error", msg.err)
		cmd := m.setFlash("Failed to save wallpaper. Please try again.", flashError)
		return m, cmd
	}
	m.log.Info("wallpaper saved", "id", msg.id, "path", msg.path)
	cmd := m.setFlash("Wallpaper saved successfully!", flashSuccess)
	return m, cmd
}

func (m Model) handleShareDone(msg shareDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("share failed", "error", msg.err)
		cmd := m.setFlash("Failed to share. Please try again.", flashError)
		return m, cmd
	}
	if msg.method == media.OpenedInBrowser {
		cmd := m.setFlash("Opened in browser", flashSuccess)
		return m, cmd
	}
	cmd := m.setFlash("Link copied to clipboard", flashSuccess)
	return m, cmd
}
