package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildcrest/sitectl/pkg/cms"
)

type note struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

func (n note) RecordID() string { return n.ID }

type fakeAPI struct {
	listFn   func(ctx context.Context) ([]note, error)
	createFn func(payload cms.Payload) (note, error)
	updateFn func(id string, payload cms.Payload) (note, error)
	deleteFn func(id string) error
}

func (f *fakeAPI) List(ctx context.Context) ([]note, error) { return f.listFn(ctx) }
func (f *fakeAPI) Create(ctx context.Context, payload cms.Payload) (note, error) {
	return f.createFn(payload)
}
func (f *fakeAPI) Update(ctx context.Context, id string, payload cms.Payload) (note, error) {
	return f.updateFn(id, payload)
}
func (f *fakeAPI) Delete(ctx context.Context, id string) error { return f.deleteFn(id) }

func listOf(items ...note) func(context.Context) ([]note, error) {
	return func(context.Context) ([]note, error) { return items, nil }
}

var (
	recA = note{ID: "a", Title: "Foundation work"}
	recB = note{ID: "b", Title: "Roofing"}
	recC = note{ID: "c", Title: "Interior finish"}
)

func TestStore_FetchAll(t *testing.T) {
	testCases := map[string]struct {
		preload     []note
		list        func(ctx context.Context) ([]note, error)
		expectErr   bool
		expectItems []note
		expectNotes []string
	}{
		"replaces_items_verbatim": {
			preload:     []note{recA},
			list:        listOf(recB, recC),
			expectItems: []note{recB, recC},
		},
		"empty_collection_is_not_an_error": {
			list:        listOf(),
			expectItems: []note{},
		},
		"failure_keeps_previous_items": {
			preload:     []note{recA, recB},
			list:        func(context.Context) ([]note, error) { return nil, &cms.APIError{Message: "Failed to load services"} },
			expectErr:   true,
			expectItems: []note{recA, recB},
			expectNotes: []string{"Failed to load services"},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			api := &fakeAPI{listFn: listOf(tc.preload...)}
			notes := &Recorder{}
			s := New[note]("Note", api, WithNotifier[note](notes))
			if tc.preload != nil {
				require.NoError(t, s.FetchAll(context.Background()))
			}

			api.listFn = tc.list
			err := s.FetchAll(context.Background())
			if tc.expectErr {
				require.Error(t, err)
				require.Equal(t, tc.expectNotes, notes.Errors)
				require.NotEmpty(t, s.Err())
			} else {
				require.NoError(t, err)
				require.Empty(t, s.Err())
			}

			require.Equal(t, tc.expectItems, s.Items())
			require.False(t, s.Loading())
		})
	}
}

func TestStore_CreatePrependsServerRecord(t *testing.T) {
	created := note{ID: "n", Title: "Fast Delivery"}
	api := &fakeAPI{
		listFn:   listOf(recA, recB),
		createFn: func(cms.Payload) (note, error) { return created, nil },
	}
	notes := &Recorder{}
	s := New[note]("Note", api, WithNotifier[note](notes))
	require.NoError(t, s.FetchAll(context.Background()))

	got, err := s.Create(context.Background(), cms.Payload{Fields: map[string]any{"title": "Fast Delivery"}})
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.Equal(t, []note{created, recA, recB}, s.Items())
	require.Equal(t, []string{"Note created"}, notes.Successes)
}

func TestStore_CreateFailureLeavesItemsUntouched(t *testing.T) {
	api := &fakeAPI{
		listFn:   listOf(recA, recB),
		createFn: func(cms.Payload) (note, error) { return note{}, &cms.APIError{Message: "Create failed"} },
	}
	notes := &Recorder{}
	s := New[note]("Note", api, WithNotifier[note](notes))
	require.NoError(t, s.FetchAll(context.Background()))
	before := s.Items()

	_, err := s.Create(context.Background(), cms.Payload{})
	require.Error(t, err)
	require.Equal(t, before, s.Items())
	require.Equal(t, []string{"Create failed"}, notes.Errors)
	require.False(t, s.Loading())
}

func TestStore_UpdateReplacesInPlace(t *testing.T) {
	updated := note{ID: "b", Title: "Roofing and gutters"}
	api := &fakeAPI{
		listFn:   listOf(recA, recB, recC),
		updateFn: func(string, cms.Payload) (note, error) { return updated, nil },
	}
	s := New[note]("Note", api)
	require.NoError(t, s.FetchAll(context.Background()))

	got, err := s.Update(context.Background(), "b", cms.Payload{})
	require.NoError(t, err)
	require.Equal(t, updated, got)
	// Position preserved, content replaced.
	require.Equal(t, []note{recA, updated, recC}, s.Items())
}

func TestStore_UpdateFailureLeavesItemsUntouched(t *testing.T) {
	api := &fakeAPI{
		listFn:   listOf(recA, recB, recC),
		updateFn: func(string, cms.Payload) (note, error) { return note{}, &cms.APIError{Message: "Update failed"} },
	}
	s := New[note]("Note", api)
	require.NoError(t, s.FetchAll(context.Background()))
	before := s.Items()

	_, err := s.Update(context.Background(), "b", cms.Payload{})
	require.Error(t, err)
	require.Equal(t, before, s.Items())
}

func TestStore_DeleteOnlyAfterConfirmation(t *testing.T) {
	api := &fakeAPI{
		listFn:   listOf(recA, recB, recC),
		deleteFn: func(string) error { return nil },
	}
	s := New[note]("Note", api)
	require.NoError(t, s.FetchAll(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "a"))
	require.Equal(t, []note{recB, recC}, s.Items())
}

func TestStore_DeleteFailureLeavesItemsUntouched(t *testing.T) {
	api := &fakeAPI{
		listFn:   listOf(recA, recB, recC),
		deleteFn: func(string) error { return &cms.APIError{Message: "Delete failed"} },
	}
	s := New[note]("Note", api)
	require.NoError(t, s.FetchAll(context.Background()))

	require.Error(t, s.Delete(context.Background(), "a"))
	require.Equal(t, []note{recA, recB, recC}, s.Items())
}

func TestStore_NoDuplicateIdentifiers(t *testing.T) {
	api := &fakeAPI{
		listFn:   listOf(recA, recB),
		createFn: func(cms.Payload) (note, error) { return note{ID: "a", Title: "Replacement"}, nil },
		deleteFn: func(string) error { return nil },
	}
	s := New[note]("Note", api)
	require.NoError(t, s.FetchAll(context.Background()))

	// Server hands back an identifier the list already holds.
	_, err := s.Create(context.Background(), cms.Payload{})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, item := range s.Items() {
		require.False(t, seen[item.RecordID()], "duplicate identifier %q", item.RecordID())
		seen[item.RecordID()] = true
	}
}

func TestStore_OverlappingFetchStaleResponseDiscarded(t *testing.T) {
	var (
		mu          sync.Mutex
		calls       int
		firstIssued = make(chan struct{})
		release     = make(chan struct{})
	)
	api := &fakeAPI{
		listFn: func(context.Context) ([]note, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()

			if first {
				close(firstIssued)
				// Resolve only after the second fetch has landed.
				<-release
				return []note{{ID: "stale", Title: "old"}}, nil
			}
			return []note{{ID: "fresh", Title: "new"}}, nil
		},
	}
	s := New[note]("Note", api)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.FetchAll(context.Background()) }()
	<-firstIssued

	require.NoError(t, s.FetchAll(context.Background()))
	close(release)

	require.ErrorIs(t, <-firstDone, ErrStaleFetch)
	require.Equal(t, []note{{ID: "fresh", Title: "new"}}, s.Items())
	require.False(t, s.Loading())
}

func TestStore_LoadingTogglesAroundOwnRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		listFn: func(context.Context) ([]note, error) {
			close(started)
			<-release
			return []note{recA}, nil
		},
	}
	s := New[note]("Note", api)

	done := make(chan struct{})
	go func() {
		_ = s.FetchAll(context.Background())
		close(done)
	}()

	<-started
	require.True(t, s.Loading())
	close(release)
	<-done
	require.False(t, s.Loading())
}

func TestStore_ResetReturnsToInitialState(t *testing.T) {
	api := &fakeAPI{listFn: listOf(recA)}
	s := New[note]("Note", api)
	require.NoError(t, s.FetchAll(context.Background()))

	s.Reset()
	require.Equal(t, Snapshot[note]{Items: []note{}}, s.Snapshot())
}
