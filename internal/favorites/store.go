// Package favorites holds the user's saved wallpapers.
//
// The in-memory collection is the source of truth for the session. Every
// mutation is applied synchronously and then mirrored to a kvstore.Gateway
// as a full snapshot under the "favorites" key. Snapshots are written in
// mutation order by a single background writer; a failed write is logged and
// dropped, never retried, and never rolls back memory.
package favorites

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/five82/wallflower/internal/kvstore"
	"github.com/five82/wallflower/internal/wallpaper"
)

// Key is the storage key holding the serialized collection.
const Key = "favorites"

const writeTimeout = 5 * time.Second

// Options configure a Store.
type Options struct {
	Now    func() time.Time // defaults to time.Now
	Logger *slog.Logger     // defaults to slog.Default()
}

// Store is the favorites collection.
type Store struct {
	gw  kvstore.Gateway
	now func() time.Time
	log *slog.Logger

	mu      sync.RWMutex
	records []wallpaper.Record // newest insert first
	subs    map[int]func()
	nextSub int

	// write queue, guarded by qmu
	qmu     sync.Mutex
	qcond   *sync.Cond
	queue   []string
	pending int
	closing bool
	done    chan struct{}
}

// New creates an empty store and starts its writer. Call Load to read the
// saved collection and Close to stop the writer.
func New(gw kvstore.Gateway, opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		gw:   gw,
		now:  now,
		log:  logger.With("component", "favorites"),
		subs: make(map[int]func()),
		done: make(chan struct{}),
	}
	s.qcond = sync.NewCond(&s.qmu)
	go s.writeLoop()
	return s
}

// Load replaces the collection with the saved one. Any read or decode
// failure leaves the collection empty; the failure is logged, not returned.
func (s *Store) Load(ctx context.Context) {
	records, err := s.read(ctx)
	if err != nil {
		s.log.Warn("load favorites failed, starting empty", "error", err)
		records = nil
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.log.Debug("favorites loaded", "count", len(records))
	s.notify()
}

func (s *Store) read(ctx context.Context) ([]wallpaper.Record, error) {
	if s.gw == nil {
		return nil, errors.New("no storage configured")
	}
	blob, found, err := s.gw.Get(ctx, Key)
	if err != nil {
		return nil, errors.Join(wallpaper.ErrPersistenceRead, err)
	}
	if !found {
		return nil, nil
	}
	return Decode(blob)
}

// Add saves rec with AddedAt set to the current time. It returns false when
// rec has no id or is already a favorite; neither case writes anything.
func (s *Store) Add(rec wallpaper.Record) bool {
	if strings.TrimSpace(rec.ID) == "" {
		s.log.Warn("ignoring favorite without id")
		return false
	}

	s.mu.Lock()
	if s.indexLocked(rec.ID) >= 0 {
		s.mu.Unlock()
		return false
	}
	rec.AddedAt = s.now().UnixMilli()
	s.records = append([]wallpaper.Record{rec}, s.records...)
	blob, err := Encode(s.records)
	s.mu.Unlock()

	s.persist(blob, err)
	s.notify()
	return true
}

// Remove deletes the favorite with id. Removing an unknown id is not an
// error; the collection is persisted either way. It reports whether a record
// was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx >= 0 {
		s.records = append(s.records[:idx:idx], s.records[idx+1:]...)
	}
	blob, err := Encode(s.records)
	s.mu.Unlock()

	s.persist(blob, err)
	if idx >= 0 {
		s.notify()
	}
	return idx >= 0
}

// Toggle adds rec when it is not a favorite and removes it otherwise. It
// returns the resulting favorite state.
func (s *Store) Toggle(rec wallpaper.Record) bool {
	if s.IsFavorite(rec.ID) {
		s.Remove(rec.ID)
		return false
	}
	return s.Add(rec)
}

// IsFavorite reports whether id is in the collection.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) >= 0
}

// Get returns the favorite with id.
func (s *Store) Get(id string) (wallpaper.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.records[idx], true
	}
	return wallpaper.Record{}, false
}

// List returns a copy of the collection, most recently added first. The
// order is recomputed on every call.
func (s *Store) List() []wallpaper.Record {
	s.mu.RLock()
	out := make([]wallpaper.Record, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt > out[j].AddedAt
	})
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Subscribe registers fn to run after every change. Callbacks run on the
// goroutine that made the change. The returned func unregisters fn.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// Flush blocks until every write queued so far has been attempted.
func (s *Store) Flush() {
	s.qmu.Lock()
	for s.pending > 0 {
		s.qcond.Wait()
	}
	s.qmu.Unlock()
}

// Close drains the write queue and stops the writer. Mutations after Close
// still change memory but are no longer persisted. It does not close the
// gateway.
func (s *Store) Close() {
	s.qmu.Lock()
	if !s.closing {
		s.closing = true
		s.qcond.Broadcast()
	}
	s.qmu.Unlock()
	<-s.done
}

func (s *Store) persist(blob string, encodeErr error) {
	if encodeErr != nil {
		s.log.Error("persist favorites failed", "error", encodeErr)
		return
	}

	s.qmu.Lock()
	defer s.qmu.Unlock()
	if s.closing {
		s.log.Warn("favorites store closed, change not persisted")
		return
	}
	s.queue = append(s.queue, blob)
	s.pending++
	s.qcond.Broadcast()
}

func (s *Store) writeLoop() {
	defer close(s.done)
	for {
		s.qmu.Lock()
		for len(s.queue) == 0 && !s.closing {
			s.qcond.Wait()
		}
		if len(s.queue) == 0 {
			s.qmu.Unlock()
			return
		}
		blob := s.queue[0]
		s.queue[0] = ""
		s.queue = s.queue[1:]
		s.qmu.Unlock()

		s.write(blob)

		s.qmu.Lock()
		s.pending--
		s.qcond.Broadcast()
		s.qmu.Unlock()
	}
}

func (s *Store) write(blob string) {
	if s.gw == nil {
		s.log.Error("persist favorites failed", "error", wallpaper.ErrPersistenceWrite)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.gw.Set(ctx, Key, blob); err != nil {
		s.log.Error("persist favorites failed", "error", errors.Join(wallpaper.ErrPersistenceWrite, err))
		return
	}
	s.log.Debug("favorites persisted", "bytes", len(blob))
}
