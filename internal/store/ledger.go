// Package store holds the authoritative in-memory state of the four POS
// entities. The Ledger is the only component with writable access to them;
// managers mutate it through Update, which runs validation and commit inside
// one critical section so operations can never interleave their effects.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/storage"
)

// Change is a bitmask of the collections a mutation touched. Only dirty
// collections are rewritten to durable storage.
type Change uint8

const (
	ChangedProducts Change = 1 << iota
	ChangedSales
	ChangedSession
	ChangedMovements
)

// State is the working view handed to Update callbacks. Sales and Movements
// are ordered most-recent-first; new records are inserted at the head.
type State struct {
	Products  []model.Product
	Sales     []model.Sale
	Session   *model.CashSession // nil when the drawer is closed
	Movements []model.CashMovement
}

// clone copies the state deeply enough that a failed mutation can be thrown
// away without touching the committed version. Element structs are values;
// sale item slices are shared because sales are immutable once created.
func (s *State) clone() State {
	c := State{
		Products:  make([]model.Product, len(s.Products)),
		Sales:     make([]model.Sale, len(s.Sales)),
		Movements: make([]model.CashMovement, len(s.Movements)),
	}
	copy(c.Products, s.Products)
	copy(c.Sales, s.Sales)
	copy(c.Movements, s.Movements)
	if s.Session != nil {
		sess := *s.Session
		c.Session = &sess
	}
	return c
}

// FindProduct returns the index of the product with the given id, or -1.
func (s *State) FindProduct(id uuid.UUID) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}

type persistJob struct {
	key  string
	blob []byte
	// ack, when non-nil, marks a flush barrier instead of a write.
	ack chan struct{}
}

// Ledger is the single authoritative holder of catalog, sales, session and
// movement state. Constructed once at process start from the durable store,
// flushed at shutdown via Close.
type Ledger struct {
	mu    sync.Mutex
	state State

	store storage.Store
	jobs  chan persistJob
	done  chan struct{}
}

// Open loads the four blobs from the durable store and starts the
// write-through persister. An absent catalog falls back to the seed list;
// the other collections initialize empty.
func Open(ctx context.Context, st storage.Store) (*Ledger, error) {
	l := &Ledger{
		store: st,
		jobs:  make(chan persistJob, 128),
		done:  make(chan struct{}),
	}

	if err := l.load(ctx); err != nil {
		return nil, err
	}

	go l.runPersister()
	return l, nil
}

func (l *Ledger) load(ctx context.Context) error {
	seeded, err := loadBlob(ctx, l.store, storage.KeyProducts, &l.state.Products)
	if err != nil {
		return err
	}
	if seeded {
		l.state.Products = SeedProducts()
		log.Info().Int("products", len(l.state.Products)).Msg("empty catalog, seeding demo products")
	}
	if _, err := loadBlob(ctx, l.store, storage.KeySales, &l.state.Sales); err != nil {
		return err
	}
	if _, err := loadBlob(ctx, l.store, storage.KeySession, &l.state.Session); err != nil {
		return err
	}
	if _, err := loadBlob(ctx, l.store, storage.KeyMovements, &l.state.Movements); err != nil {
		return err
	}
	if seeded {
		l.enqueue(ChangedProducts)
	}
	return nil
}

// loadBlob unmarshals one key into dst. Returns true when the key is absent.
func loadBlob(ctx context.Context, st storage.Store, key string, dst interface{}) (bool, error) {
	blob, err := st.Load(ctx, key)
	if err == storage.ErrNotFound {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: load %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, dst); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return false, nil
}

// Update runs fn against a working copy of the state under the ledger lock.
// If fn returns an error the copy is discarded and the committed state is
// left completely unchanged. On success the copy becomes the committed state
// and every dirty collection is queued for a whole-blob rewrite.
func (l *Ledger) Update(fn func(s *State) (Change, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	work := l.state.clone()
	change, err := fn(&work)
	if err != nil {
		return err
	}
	l.state = work
	l.enqueue(change)
	return nil
}

// View runs fn under the lock for read-only access. fn must not retain
// references to slices or the session after it returns.
func (l *Ledger) View(fn func(s *State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.state)
}

// Products returns a snapshot copy of the catalog.
func (l *Ledger) Products() []model.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Product, len(l.state.Products))
	copy(out, l.state.Products)
	return out
}

// Sales returns a snapshot copy of the sales ledger, most recent first.
func (l *Ledger) Sales() []model.Sale {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Sale, len(l.state.Sales))
	copy(out, l.state.Sales)
	return out
}

// Session returns a copy of the open session, or nil when the drawer is closed.
func (l *Ledger) Session() *model.CashSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Session == nil {
		return nil
	}
	sess := *l.state.Session
	return &sess
}

// Movements returns a snapshot copy of the movement ledger, most recent first.
func (l *Ledger) Movements() []model.CashMovement {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.CashMovement, len(l.state.Movements))
	copy(out, l.state.Movements)
	return out
}

// NewID generates an entity id. UUIDs replace the original design's
// timestamp-derived ids, which collide under rapid successive operations.
func (l *Ledger) NewID() uuid.UUID { return uuid.New() }

// GenerateBarcode produces a catalog-unique EAN-style code with the same
// "750" prefix the seed data uses.
func GenerateBarcode(s *State) string {
	for {
		code := fmt.Sprintf("750%010d", rand.Int64N(10_000_000_000))
		taken := false
		for i := range s.Products {
			if s.Products[i].Barcode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code
		}
	}
}

// ── Persistence ──────────────────────────────────────────────────────────────

// enqueue marshals each dirty collection and hands the blobs to the persister
// goroutine. Called with the lock held; callers never wait on storage I/O.
func (l *Ledger) enqueue(change Change) {
	for _, c := range []struct {
		bit  Change
		key  string
		data interface{}
	}{
		{ChangedProducts, storage.KeyProducts, l.state.Products},
		{ChangedSales, storage.KeySales, l.state.Sales},
		{ChangedSession, storage.KeySession, l.state.Session},
		{ChangedMovements, storage.KeyMovements, l.state.Movements},
	} {
		if change&c.bit == 0 {
			continue
		}
		blob, err := json.Marshal(c.data)
		if err != nil {
			log.Error().Str("key", c.key).Err(err).Msg("marshal snapshot")
			continue
		}
		l.jobs <- persistJob{key: c.key, blob: blob}
	}
}

func (l *Ledger) runPersister() {
	defer close(l.done)
	for job := range l.jobs {
		if job.ack != nil {
			close(job.ack)
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := l.store.Save(ctx, job.key, job.blob); err != nil {
			log.Error().Str("key", job.key).Err(err).Msg("persist snapshot")
		}
		cancel()
	}
}

// Close drains pending writes and performs a final synchronous flush of all
// four collections.
func (l *Ledger) Close(ctx context.Context) error {
	close(l.jobs)
	<-l.done

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range []struct {
		key  string
		data interface{}
	}{
		{storage.KeyProducts, l.state.Products},
		{storage.KeySales, l.state.Sales},
		{storage.KeySession, l.state.Session},
		{storage.KeyMovements, l.state.Movements},
	} {
		blob, err := json.Marshal(c.data)
		if err != nil {
			return err
		}
		if err := l.store.Save(ctx, c.key, blob); err != nil {
			return err
		}
	}
	return nil
}

// Flush blocks until every write queued before the call has reached the
// durable store. Test hook; production code relies on Close.
func (l *Ledger) Flush() {
	ack := make(chan struct{})
	l.jobs <- persistJob{ack: ack}
	<-ack
}
