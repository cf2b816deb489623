package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/wallflower/internal/appearance"
	"github.com/five82/wallflower/internal/favorites"
	"github.com/five82/wallflower/internal/media"
	"github.com/five82/wallflower/internal/prefs"
	"github.com/five82/wallflower/internal/wallpaper"
)

type fakeSource struct {
	mu  sync.Mutex
	err error
}

func (f *fakeSource) FetchRandom(_ context.Context, count, page int) ([]wallpaper.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return makePage("r", page, count), nil
}

func (f *fakeSource) Search(_ context.Context, query string, perPage, page int) ([]wallpaper.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return makePage(query, page, perPage), nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func makePage(prefix string, page, n int) []wallpaper.Record {
	out := make([]wallpaper.Record, n)
	for i := range out {
		id := fmt.Sprintf("%s-%d-%d", prefix, page, i)
		out[i] = wallpaper.Record{
			ID:           id,
			ImageURL:     "https://img/" + id,
			AuthorName:   "Author " + id,
			AuthorHandle: "user" + id,
			Description:  "Wallpaper " + id,
		}
	}
	return out
}

type testModel struct {
	Model
	src       *fakeSource
	prefsPath string
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestModel returns a sized model with the first browse page loaded.
func newTestModel(t *testing.T, opts Options) testModel {
	t.Helper()
	src := &fakeSource{}
	favs := favorites.New(nil, favorites.Options{Logger: quietLogger()})
	t.Cleanup(favs.Close)

	opts.Source = src
	opts.Favorites = favs
	opts.Logger = quietLogger()
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	if opts.Appearance == nil {
		opts.Appearance = appearance.NewStore(appearance.Dark)
	}

	m := New(opts)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	res := m.pager.Start().Fetch(context.Background(), src, m.perPage)
	m = send(t, m, fetchResultMsg(res))
	return testModel{Model: m, src: src, prefsPath: opts.PrefsPath}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, _ = update(t, m, msg)
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = update(t, m, keyMsg(k))
	}
	return m, cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// fetchResults runs cmd, which must not contain timers, and returns the
// fetch results it produced.
func fetchResults(cmd tea.Cmd) []fetchResultMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []fetchResultMsg
		for _, c := range msg {
			out = append(out, fetchResults(c)...)
		}
		return out
	case fetchResultMsg:
		return []fetchResultMsg{msg}
	}
	return nil
}

func TestFirstPageFocusesCarousel(t *testing.T) {
	m := newTestModel(t, Options{})

	if got := m.pager.Len(); got != defaultPerPage {
		t.Fatalf("items = %d, want %d", got, defaultPerPage)
	}
	if m.selected != carouselFocus {
		t.Fatalf("selected = %d, want carousel", m.selected)
	}
	view := m.View()
	for _, want := range []string{"Featured", "All Wallpapers", "Wallpaper r-1-0"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestCarouselWrapsAround(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	m, _ = press(t, m, "l")
	if got := m.carousel.Index(); got != 1 {
		t.Fatalf("after next index = %d, want 1", got)
	}
	m, _ = press(t, m, "h", "h")
	if got := m.carousel.Index(); got != 4 {
		t.Fatalf("after prev twice index = %d, want 4", got)
	}

	rec, ok := m.selectedRecord()
	if !ok || rec.ID != "r-1-4" {
		t.Fatalf("selectedRecord = %q, %v, want r-1-4", rec.ID, ok)
	}
}

func TestGridNavigation(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	m, _ = press(t, m, "j")
	if m.selected != 0 {
		t.Fatalf("down from carousel = %d, want 0", m.selected)
	}
	m, _ = press(t, m, "l", "j")
	if m.selected != 3 {
		t.Fatalf("right then down = %d, want 3", m.selected)
	}
	m, _ = press(t, m, "k", "k", "k")
	if m.selected != carouselFocus {
		t.Fatalf("up past first row = %d, want carousel", m.selected)
	}
}

func TestBottomLoadsNextPage(t *testing.T) {
	tm := newTestModel(t, Options{})
	m := send(t, tm.Model, tea.WindowSizeMsg{Width: 100, Height: 12})

	m, cmd := press(t, m, "G")
	results := fetchResults(cmd)
	if len(results) != 1 {
		t.Fatalf("fetches = %d, want 1", len(results))
	}
	req := results[0].Request
	if req.Page != 2 || !req.Append {
		t.Fatalf("request = %+v, want append page 2", req)
	}
	if !m.pager.Loading() {
		t.Fatalf("expected loading while page 2 is in flight")
	}

	// A second scroll while loading must not issue another page.
	m, _ = press(t, m, "k")
	_, cmd = press(t, m, "G")
	if got := fetchResults(cmd); len(got) != 0 {
		t.Fatalf("fetches while loading = %d, want 0", len(got))
	}

	m = send(t, m, results[0])
	if got := m.pager.Len(); got != 2*defaultPerPage {
		t.Fatalf("items = %d, want %d", got, 2*defaultPerPage)
	}
}

func TestFailedPageKeepsItems(t *testing.T) {
	tm := newTestModel(t, Options{})
	m := send(t, tm.Model, tea.WindowSizeMsg{Width: 100, Height: 12})
	tm.src.fail(errors.New("offline"))

	m, cmd := press(t, m, "G")
	results := fetchResults(cmd)
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("results = %+v, want one failure", results)
	}
	m = send(t, m, results[0])

	if got := m.pager.Len(); got != defaultPerPage {
		t.Fatalf("items = %d, want %d", got, defaultPerPage)
	}
	if m.pager.Loading() {
		t.Fatalf("loading still set after failure")
	}
	if m.flash.text != "" {
		t.Fatalf("flash = %q, want none for fetch failures", m.flash.text)
	}
}

func TestSearchAndExit(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	m, _ = press(t, m, "/")
	if !m.searching {
		t.Fatalf("expected search input to open")
	}
	m, _ = press(t, m, "cats")
	m, cmd := press(t, m, "enter")
	if m.searching {
		t.Fatalf("search input still open after enter")
	}
	results := fetchResults(cmd)
	if len(results) != 1 || results[0].Request.Query != "cats" || results[0].Request.Page != 1 {
		t.Fatalf("results = %+v, want cats page 1", results)
	}
	m = send(t, m, results[0])

	if first, _ := m.pager.Item(0); first.ID != "cats-1-0" {
		t.Fatalf("first item = %q, want cats-1-0", first.ID)
	}
	if m.selected != 0 {
		t.Fatalf("selected = %d, want first card (no carousel in search)", m.selected)
	}
	if view := m.View(); !strings.Contains(view, `Results for "cats"`) {
		t.Fatalf("view missing search title")
	}

	m, cmd = press(t, m, "esc")
	results = fetchResults(cmd)
	if len(results) != 1 || results[0].Request.Query != "" || results[0].Request.Page != 1 {
		t.Fatalf("results = %+v, want browse page 1", results)
	}
	m = send(t, m, results[0])
	if first, _ := m.pager.Item(0); first.ID != "r-1-0" {
		t.Fatalf("first item = %q, want r-1-0", first.ID)
	}
}

func TestBlankSearchIsIgnored(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	m, _ = press(t, m, "/", "   ")
	m, cmd := press(t, m, "enter")
	if got := fetchResults(cmd); len(got) != 0 {
		t.Fatalf("fetches = %d, want 0", len(got))
	}
	if m.pager.Loading() {
		t.Fatalf("blank search started a fetch")
	}
}

func TestFavoriteToggleAndRemove(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	m, _ = press(t, m, "j", "f")
	if !m.favorites.IsFavorite("r-1-0") {
		t.Fatalf("r-1-0 not saved")
	}
	if view := m.View(); !strings.Contains(view, "♥") {
		t.Fatalf("view missing filled heart")
	}

	m, _ = press(t, m, "tab")
	if m.screen != screenFavorites {
		t.Fatalf("tab did not switch to favorites")
	}
	if view := m.View(); !strings.Contains(view, "Wallpaper r-1-0") {
		t.Fatalf("favorites view missing saved wallpaper")
	}

	m, _ = press(t, m, "x")
	if m.favorites.Len() != 0 {
		t.Fatalf("favorites = %d, want 0", m.favorites.Len())
	}
	if view := m.View(); !strings.Contains(view, "No favorites yet") {
		t.Fatalf("view missing empty favorites message")
	}
}

func TestDetailOpenAndClose(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	m, _ = press(t, m, "enter")
	if m.detail == nil || m.detail.ID != "r-1-0" {
		t.Fatalf("detail = %+v, want r-1-0", m.detail)
	}
	view := m.View()
	for _, want := range []string{"Photo by", "@userr-1-0", "Get Wallpaper"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q", want)
		}
	}

	m, _ = press(t, m, "f")
	if !m.favorites.IsFavorite("r-1-0") {
		t.Fatalf("favorite from detail not saved")
	}

	m, _ = press(t, m, "esc")
	if m.detail != nil {
		t.Fatalf("detail still open after esc")
	}
}

func TestToggleMode(t *testing.T) {
	store := appearance.NewStore(appearance.Dark)
	m := newTestModel(t, Options{Appearance: store}).Model

	m, _ = press(t, m, "t")
	if m.mode != appearance.Light || m.theme.Mode != appearance.Light {
		t.Fatalf("mode = %v theme = %v, want light", m.mode, m.theme.Mode)
	}
	if store.Current() != appearance.Light {
		t.Fatalf("store = %v, want light", store.Current())
	}

	m, _ = press(t, m, "t")
	if m.mode != appearance.Dark {
		t.Fatalf("mode = %v, want dark after second toggle", m.mode)
	}
}

func TestCyclePaletteSavesPrefs(t *testing.T) {
	tm := newTestModel(t, Options{Palette: "Nightfox"})

	m, _ := press(t, tm.Model, "T")
	if m.palette != "Kanagawa" || m.theme.Name != "Kanagawa" {
		t.Fatalf("palette = %q theme = %q, want Kanagawa", m.palette, m.theme.Name)
	}
	if got := prefs.Load(tm.prefsPath).Palette; got != "Kanagawa" {
		t.Fatalf("saved palette = %q, want Kanagawa", got)
	}
}

func TestFocusRechecksHost(t *testing.T) {
	store := appearance.NewStore(appearance.Dark)
	probe := func() (appearance.Mode, string, bool) { return appearance.Light, "test", true }
	m := newTestModel(t, Options{Appearance: store, HostProbe: probe}).Model

	m, cmd := update(t, m, tea.FocusMsg{})
	if cmd == nil {
		t.Fatalf("focus did not probe the host")
	}
	m = send(t, m, cmd())
	if m.mode != appearance.Light {
		t.Fatalf("mode = %v, want light from host", m.mode)
	}
}

func TestDownloadFlash(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	m = send(t, m, downloadDoneMsg{id: "a", err: errors.New("boom")})
	if m.flash.text != "Failed to save wallpaper. Please try again." || m.flash.kind != flashError {
		t.Fatalf("flash = %+v", m.flash)
	}
	failedID := m.flash.id

	m = send(t, m, downloadDoneMsg{id: "a", path: "/tmp/wallpaper_1.jpg"})
	if m.flash.text != "Wallpaper saved successfully!" {
		t.Fatalf("flash = %q", m.flash.text)
	}

	// The timer of the replaced message must not clear the new one.
	m = send(t, m, clearFlashMsg{id: failedID})
	if m.flash.text == "" {
		t.Fatalf("stale clear removed the current flash")
	}
	m = send(t, m, clearFlashMsg{id: m.flash.id})
	if m.flash.text != "" {
		t.Fatalf("flash not cleared")
	}
}

func TestShareFlash(t *testing.T) {
	m := newTestModel(t, Options{}).Model

	tests := []struct {
		msg  shareDoneMsg
		want string
	}{
		{shareDoneMsg{method: media.SharedToClipboard}, "Link copied to clipboard"},
		{shareDoneMsg{method: media.OpenedInBrowser}, "Opened in browser"},
		{shareDoneMsg{err: errors.New("no clipboard")}, "Failed to share. Please try again."},
	}
	for _, tc := range tests {
		m = send(t, m, tc.msg)
		if m.flash.text != tc.want {
			t.Fatalf("flash = %q, want %q", m.flash.text, tc.want)
		}
	}
}

type recordingSharer struct {
	shared []string
}

func (s *recordingSharer) Share(rec wallpaper.Record) (media.ShareMethod, error) {
	s.shared = append(s.shared, rec.ID)
	return media.SharedToClipboard, nil
}

func TestShareKeyRunsSharer(t *testing.T) {
	sharer := &recordingSharer{}
	m := newTestModel(t, Options{Sharer: sharer}).Model

	m, cmd := press(t, m, "s")
	if cmd == nil {
		t.Fatalf("share returned no command")
	}
	m = send(t, m, cmd())
	if len(sharer.shared) != 1 || sharer.shared[0] != "r-1-0" {
		t.Fatalf("shared = %v, want [r-1-0]", sharer.shared)
	}
	if m.flash.text != "Link copied to clipboard" {
		t.Fatalf("flash = %q", m.flash.text)
	}
}
