package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/wallflower/internal/appearance"
	"github.com/five82/wallflower/internal/browse"
	"github.com/five82/wallflower/internal/favorites"
	"github.com/five82/wallflower/internal/media"
	"github.com/five82/wallflower/internal/prefs"
	"github.com/five82/wallflower/internal/wallpaper"
)

const (
	defaultPerPage = 15
	fetchTimeout   = 15 * time.Second
	flashDuration  = 3 * time.Second
)

// screen is the active top-level screen.
type screen int

const (
	screenBrowse screen = iota
	screenFavorites
)

// carouselFocus is the browse selection when the featured carousel has focus.
const carouselFocus = -1

// Downloader saves a wallpaper image locally.
type Downloader interface {
	Download(ctx context.Context, rec wallpaper.Record) (string, error)
}

// Sharer hands a wallpaper link to the desktop.
type Sharer interface {
	Share(rec wallpaper.Record) (media.ShareMethod, error)
}

var (
	_ Downloader = (*media.Downloader)(nil)
	_ Sharer     = (*media.Sharer)(nil)
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Source     browse.Source
	PerPage    int
	Favorites  *favorites.Store
	Appearance *appearance.Store
	HostProbe  func() (appearance.Mode, string, bool) // re-checks the host scheme on focus
	Downloader Downloader
	Sharer     Sharer
	Palette    string
	PrefsPath  string
	Logger     *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	source     browse.Source
	perPage    int
	favorites  *favorites.Store
	appearance *appearance.Store
	hostProbe  func() (appearance.Mode, string, bool)
	downloader Downloader
	sharer     Sharer
	prefsPath  string
	log        *slog.Logger

	// UI state
	keys    keyMap
	help    help.Model
	palette string
	mode    appearance.Mode
	theme   Theme
	screen  screen
	width   int
	height  int
	ready   bool

	// Browse state
	pager    *browse.Controller
	carousel browse.Carousel
	selected int // carouselFocus or an item index
	offset   int // first visible content line

	// Favorites state
	favSelected int
	favOffset   int

	// Search input
	search    textinput.Model
	searching bool

	// Loading indicator
	spinner  spinner.Model
	spinning bool

	// Overlays
	showHelp bool
	detail   *wallpaper.Record
	flash    flash
	flashSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	favs := opts.Favorites
	if favs == nil {
		favs = favorites.New(nil, favorites.Options{Logger: logger})
	}

	themeStore := opts.Appearance
	if themeStore == nil {
		themeStore = appearance.NewStore(appearance.Dark)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search wallpapers"
	search.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		source:     opts.Source,
		perPage:    perPage,
		favorites:  favs,
		appearance: themeStore,
		hostProbe:  opts.HostProbe,
		downloader: opts.Downloader,
		sharer:     opts.Sharer,
		prefsPath:  prefsPath,
		log:        logger.With("component", "ui"),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		palette:    GetPalette(opts.Palette).Name,
		mode:       themeStore.Current(),
		pager:      browse.NewController(logger),
		search:     search,
		spinner:    spin,
		spinning:   true, // Init starts the tick loop
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCmd(m.pager.Start()),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = maxInt(10, m.width-6)
		m.help.Width = m.width
		m.ensureVisible()
		m.ensureFavoriteVisible()
		cmd := m.maybeLoadMore()
		return m, cmd

	case tea.FocusMsg:
		return m, hostProbeCmd(m.hostProbe)

	case fetchResultMsg:
		return m.handleFetchResult(msg)

	case spinner.TickMsg:
		if !m.pager.Loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case hostProbeMsg:
		if msg.ok && m.appearance.SyncHost(msg.mode) {
			m.log.Info("host appearance changed", "mode", msg.mode, "source", msg.source)
		}
		m.syncMode()
		return m, nil

	case appearanceMsg:
		m.syncMode()
		return m, nil

	case favoritesChangedMsg:
		m.ensureFavoriteVisible()
		return m, nil

	case downloadDoneMsg:
		return m.handleDownloadDone(msg)

	case shareDoneMsg:
		return m.handleShareDone(msg)

	case clearFlashMsg:
		if msg.id == m.flash.id {
			m.flash = flash{}
		}
		return m, nil
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.detail != nil {
		return m.renderDetail()
	}

	return m.renderMain()
}

// handleFetchResult folds a page into the controller. A page that added
// items may leave the viewport near the bottom, which asks for the next one.
func (m Model) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	res := browse.Result(msg)
	before := m.pager.Len()
	if !m.pager.Apply(res) {
		return m, nil
	}

	if !res.Request.Append {
		m.offset = 0
		m.carousel = browse.Carousel{}
		m.selected = 0
		if m.layout().carousel {
			m.selected = carouselFocus
		}
	}
	m.carousel = m.carousel.Clamp(len(m.featured()))
	m.ensureVisible()

	if res.Request.Append && m.pager.Len() == before {
		return m, nil
	}
	cmd := m.maybeLoadMore()
	return m, cmd
}

// issue starts a fetch and the loading spinner.
func (m *Model) issue(req browse.Request) tea.Cmd {
	cmds := []tea.Cmd{m.fetchCmd(req)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// maybeLoadMore requests the next page when the browse viewport is near the
// end of the content.
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.ready || m.screen != screenBrowse || m.pager.Len() == 0 {
		return nil
	}
	l := m.layout()
	bottom := m.offset + m.contentHeight()
	if !browse.NearBottom(bottom, l.total, browse.DefaultThreshold*cardHeight) {
		return nil
	}
	req, ok := m.pager.LoadMore()
	if !ok {
		return nil
	}
	return m.issue(req)
}

// syncMode picks up the theme store's current mode.
func (m *Model) syncMode() {
	mode := m.appearance.Current()
	if mode == m.mode {
		return
	}
	m.mode = mode
	m.applyTheme()
}

// applyTheme restyles the widgets for the current palette and mode.
func (m *Model) applyTheme() {
	m.theme = GetTheme(m.palette, m.mode)
	styles := m.theme.Styles()
	bar := styles.WithBackground(m.theme.Surface)

	m.search.PromptStyle = styles.AccentText
	m.search.TextStyle = styles.Text
	m.search.PlaceholderStyle = styles.FaintText
	m.search.Cursor.Style = styles.AccentText

	m.spinner.Style = bar.AccentText

	m.help.Styles.ShortKey = bar.AccentText
	m.help.Styles.ShortDesc = bar.MutedText
	m.help.Styles.ShortSeparator = bar.FaintText
	m.help.Styles.Ellipsis = bar.FaintText
}

// cyclePalette switches to the next palette and remembers it.
func (m *Model) cyclePalette() {
	m.palette = NextPalette(m.palette)
	m.applyTheme()
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Palette: m.palette}); err != nil {
		m.log.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// setFlash shows a footer message that clears itself after flashDuration.
func (m *Model) setFlash(text string, kind flashKind) tea.Cmd {
	m.flashSeq++
	id := m.flashSeq
	m.flash = flash{text: text, kind: kind, id: id}
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{id: id}
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Source == nil {
		return fmt.Errorf("ui requires a photo source")
	}

	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(m.ctx),
	)

	// Stores notify on the goroutine that changed them, which may be the
	// update loop itself, so never Send synchronously.
	unsubMode := m.appearance.Subscribe(func(appearance.Mode) {
		go p.Send(appearanceMsg{})
	})
	defer unsubMode()
	unsubFavs := m.favorites.Subscribe(func() {
		go p.Send(favoritesChangedMsg{})
	})
	defer unsubFavs()

	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
