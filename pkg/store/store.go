// Package store holds the client-side mirror of one server collection:
// an ordered record list plus loading/error flags, reconciled against the
// API by fetch/create/update/delete operations. Every managed collection
// in the admin surface is one instance of the same parameterized store.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/go-kit/log"
)

// Record is anything with a server-assigned unique identifier.
type Record interface {
	RecordID() string
}

// API is the slice of the REST client a store drives. cms.Collection
// satisfies it for every entity kind.
type API[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload cms.Payload) (T, error)
	Update(ctx context.Context, id string, payload cms.Payload) (T, error)
	Delete(ctx context.Context, id string) error
}

// ErrStaleFetch reports that a FetchAll response arrived after a newer
// fetch had already been issued and was therefore discarded.
var ErrStaleFetch = errors.New("stale fetch response discarded")

// Store mirrors one collection. All state behind the mutex; operations
// release it across the network call so the surface stays responsive and
// may overlap requests freely.
type Store[T Record] struct {
	label  string
	api    API[T]
	notify Notifier
	logger log.Logger

	mu       sync.Mutex
	items    []T
	loading  bool
	err      string
	fetchSeq uint64
}

// Snapshot is a point-in-time copy of the store's observable state.
type Snapshot[T Record] struct {
	Items   []T
	Loading bool
	Err     string
}

type Option[T Record] func(*Store[T])

func WithNotifier[T Record](n Notifier) Option[T] {
	return func(s *Store[T]) { s.notify = n }
}

func WithLogger[T Record](logger log.Logger) Option[T] {
	return func(s *Store[T]) { s.logger = logger }
}

// New builds an empty store for one collection. label names the entity in
// notifications ("Service created" and the like).
func New[T Record](label string, api API[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		label:  label,
		api:    api,
		notify: NopNotifier{},
		logger: log.NewNopLogger(),
		items:  []T{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAll replaces the local list with the server's, verbatim. Responses
// are sequence-tagged: when fetches overlap, only the latest-issued one is
// allowed to land, so a slow stale response can never clobber a fresh one.
func (s *Store[T]) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	items, err := s.api.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		// A newer fetch owns the loading flag and the list now.
		s.logger.Log("msg", "discarding stale fetch response", "entity", s.label, "seq", seq, "latest", s.fetchSeq)
		return ErrStaleFetch
	}
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.notify.Error(s.err)
		return err
	}

	s.items = items
	return nil
}

// Create submits the payload and, once the server returns the canonical
// record, prepends it: newest entries show first. The created record is
// returned so the caller can reset its form; on failure the list is
// untouched and the caller keeps its input.
func (s *Store[T]) Create(ctx context.Context, payload cms.Payload) (record T, err error) {
	s.setLoading(true)

	record, err = s.api.Create(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.notify.Error(s.err)
		return record, err
	}

	s.items = append([]T{record}, discardID(s.items, record.RecordID())...)
	s.notify.Success(fmt.Sprintf("%s created", s.label))
	return record, nil
}

// Update replaces the matching record in place: position preserved, not
// moved to front. A record the list no longer holds is left alone.
func (s *Store[T]) Update(ctx context.Context, id string, payload cms.Payload) (record T, err error) {
	s.setLoading(true)

	record, err = s.api.Update(ctx, id, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.notify.Error(s.err)
		return record, err
	}

	for i := range s.items {
		if s.items[i].RecordID() == record.RecordID() {
			s.items[i] = record
			break
		}
	}
	s.notify.Success(fmt.Sprintf("%s updated", s.label))
	return record, nil
}

// Delete removes the record only after the server confirms: a failed
// delete leaves the list consistent with server state.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.setLoading(true)

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.notify.Error(s.err)
		return err
	}

	s.items = discardID(s.items, id)
	s.notify.Success(fmt.Sprintf("%s deleted", s.label))
	return nil
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return Snapshot[T]{Items: items, Loading: s.loading, Err: s.err}
}

// Reset empties the store back to its initial state.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []T{}
	s.loading = false
	s.err = ""
}

func (s *Store[T]) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
	if v {
		s.err = ""
	}
}

func discardID[T Record](items []T, id string) []T {
	out := items[:0:0]
	for _, item := range items {
		if item.RecordID() != id {
			out = append(out, item)
		}
	}
	return out
}
