// Package browse tracks which page of wallpapers the main screen shows and
// whether a fetch is in flight.
//
// The Controller is not safe for concurrent use; it is driven from the UI
// update loop. Fetching happens elsewhere: each transition hands back a
// Request, the caller runs it (usually in a tea.Cmd) and feeds the Result to
// Apply. Every Request carries a generation number and Apply ignores results
// from requests that have since been superseded.
package browse

import (
	"context"
	"log/slog"
	"strings"

	"github.com/five82/wallflower/internal/wallpaper"
)

// Mode is the listing mode.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "browse"
}

// Request describes one fetch. Page is the page being requested; it is only
// committed once the fetch succeeds.
type Request struct {
	Generation uint64
	Mode       Mode
	Query      string
	Page       int
	Append     bool
}

// Result is the outcome of running a Request.
type Result struct {
	Request Request
	Records []wallpaper.Record
	Err     error
}

// Source is the remote photo service.
type Source interface {
	FetchRandom(ctx context.Context, count, page int) ([]wallpaper.Record, error)
	Search(ctx context.Context, query string, perPage, page int) ([]wallpaper.Record, error)
}

// Fetch runs the request against src.
func (r Request) Fetch(ctx context.Context, src Source, perPage int) Result {
	var (
		records []wallpaper.Record
		err     error
	)
	if r.Mode == ModeSearch {
		records, err = src.Search(ctx, r.Query, perPage, r.Page)
	} else {
		records, err = src.FetchRandom(ctx, perPage, r.Page)
	}
	return Result{Request: r, Records: records, Err: err}
}

// State is a snapshot of the controller.
type State struct {
	Mode    Mode
	Query   string
	Page    int // zero until the first fetch succeeds
	Loading bool
	Items   []wallpaper.Record
}

// Controller is the pagination state machine.
type Controller struct {
	log *slog.Logger

	mode    Mode
	query   string
	page    int
	loading bool
	items   []wallpaper.Record

	generation uint64
}

// NewController returns an idle controller with no items.
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{log: logger.With("component", "browse")}
}

// Start requests browse page 1. It supersedes anything in flight.
func (c *Controller) Start() Request {
	return c.issue(ModeBrowse, "", 1, false)
}

// LoadMore requests the page after the current one in the current mode.
// It returns false, and issues nothing, while a fetch is in flight or before
// the first page has loaded.
func (c *Controller) LoadMore() (Request, bool) {
	if c.loading || c.page < 1 {
		return Request{}, false
	}
	return c.issue(c.mode, c.query, c.page+1, true), true
}

// Submit requests page 1 of a search. Blank queries are ignored. A
// submission supersedes anything in flight.
func (c *Controller) Submit(query string) (Request, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, false
	}
	return c.issue(ModeSearch, query, 1, false), true
}

// ExitSearch requests browse page 1 again when searching. Browse results
// are not cached.
func (c *Controller) ExitSearch() (Request, bool) {
	if c.mode != ModeSearch {
		return Request{}, false
	}
	return c.issue(ModeBrowse, "", 1, false), true
}

func (c *Controller) issue(mode Mode, query string, page int, appendItems bool) Request {
	c.generation++
	c.loading = true
	req := Request{
		Generation: c.generation,
		Mode:       mode,
		Query:      query,
		Page:       page,
		Append:     appendItems,
	}
	c.log.Debug("fetch issued", "generation", req.Generation, "mode", mode, "query", query, "page", page)
	return req
}

// Apply folds a fetch result into the state. Results from superseded
// requests are dropped. A failed fetch only clears the loading flag. It
// reports whether the items changed.
func (c *Controller) Apply(res Result) bool {
	req := res.Request
	if req.Generation != c.generation {
		c.log.Debug("stale fetch discarded", "generation", req.Generation, "current", c.generation)
		return false
	}
	c.loading = false

	if res.Err != nil {
		c.log.Warn("fetch failed", "mode", req.Mode, "query", req.Query, "page", req.Page, "error", res.Err)
		return false
	}

	records := wallpaper.Displayable(res.Records)
	if skipped := len(res.Records) - len(records); skipped > 0 {
		c.log.Debug("skipped invalid records", "count", skipped)
	}

	c.mode = req.Mode
	c.query = req.Query
	c.page = req.Page
	if req.Append {
		c.items = append(c.items, records...)
	} else {
		c.items = records
	}
	return true
}

// State returns a snapshot. Items is a copy.
func (c *Controller) State() State {
	items := make([]wallpaper.Record, len(c.items))
	copy(items, c.items)
	return State{
		Mode:    c.mode,
		Query:   c.query,
		Page:    c.page,
		Loading: c.loading,
		Items:   items,
	}
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	return c.loading
}

// Len returns the number of items.
func (c *Controller) Len() int {
	return len(c.items)
}

// Item returns the item at i.
func (c *Controller) Item(i int) (wallpaper.Record, bool) {
	if i < 0 || i >= len(c.items) {
		return wallpaper.Record{}, false
	}
	return c.items[i], true
}

// DefaultThreshold is how many rows from the end of the content a viewport
// may get before more items are requested.
const DefaultThreshold = 2

// NearBottom reports whether the bottom edge of the viewport is within
// threshold of the bottom of the content.
func NearBottom(viewportBottom, contentHeight, threshold int) bool {
	return viewportBottom >= contentHeight-threshold
}
