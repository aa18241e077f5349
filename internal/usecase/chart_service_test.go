package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"TrueArk/internal/domain/models"
	"TrueArk/internal/domain/repository"
	"TrueArk/pkg/cache"
)

// stubStore records inserts and serves charts from memory.
type stubStore struct {
	charts    map[string]*models.StoredChart
	insertErr error
	inserted  int
}

func newStubStore() *stubStore {
	return &stubStore{charts: map[string]*models.StoredChart{}}
}

func (s *stubStore) Init(context.Context) error { return nil }

func (s *stubStore) Insert(_ context.Context, c *models.StoredChart) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted++
	s.charts[c.ID] = c
	return nil
}

func (s *stubStore) GetByID(_ context.Context, id string) (*models.StoredChart, error) {
	return s.charts[id], nil
}

func (s *stubStore) List(_ context.Context, f models.ChartFilter) ([]*models.StoredChart, error) {
	out := make([]*models.StoredChart, 0, len(s.charts))
	for _, c := range s.charts {
		if f.EntityID != "" && c.EntityID != f.EntityID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *stubStore) Health(context.Context) error { return nil }
func (s *stubStore) Close() error                 { return nil }

// stubPublisher counts events.
type stubPublisher struct {
	published  int
	publishErr error
}

func (p *stubPublisher) PublishStored(context.Context, *models.StoredChart) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.published++
	return nil
}

func (p *stubPublisher) Close() error { return nil }

func newTestService(eph *stubEphemeris, store repository.ChartStore, pub repository.ChartPublisher, c cache.Service) *ChartService {
	engine := NewChartEngine(eph, nil, nil)
	return NewChartService(engine, store, pub, c, time.Minute, nil, nil)
}

func TestComputeCacheHitSkipsProvider(t *testing.T) {
	eph := newStubEphemeris()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	svc := newTestService(eph, nil, nil, mem)

	first, err := svc.Compute(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callsAfterFirst := eph.calls
	if callsAfterFirst == 0 {
		t.Fatal("first computation never reached the provider")
	}

	second, err := svc.Compute(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eph.calls != callsAfterFirst {
		t.Fatalf("cache hit still called the provider (%d -> %d calls)", callsAfterFirst, eph.calls)
	}

	if first.Bodies["Sun"] != second.Bodies["Sun"] {
		t.Fatalf("cached chart differs: %+v vs %+v", first.Bodies["Sun"], second.Bodies["Sun"])
	}
	if first.Houses["7"] != second.Houses["7"] {
		t.Fatalf("cached houses differ: %s vs %s", first.Houses["7"], second.Houses["7"])
	}
}

func TestComputeDifferentInputsMissCache(t *testing.T) {
	eph := newStubEphemeris()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	svc := newTestService(eph, nil, nil, mem)

	if _, err := svc.Compute(context.Background(), testInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := eph.calls

	in := testInput()
	in.Latitude = 51.48
	if _, err := svc.Compute(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eph.calls == calls {
		t.Fatal("different input was served from cache")
	}
}

func TestComputeInvalidInputNotCached(t *testing.T) {
	eph := newStubEphemeris()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	svc := newTestService(eph, nil, nil, mem)

	in := testInput()
	in.Latitude = 91
	if _, err := svc.Compute(context.Background(), in); err == nil {
		t.Fatal("expected error")
	}
	if _, err := svc.Compute(context.Background(), in); err == nil {
		t.Fatal("expected error on second attempt too")
	}
	if eph.calls != 0 {
		t.Fatalf("provider called %d times for invalid input", eph.calls)
	}
}

func TestComputeAndStorePersistsAndPublishes(t *testing.T) {
	eph := newStubEphemeris()
	store := newStubStore()
	pub := &stubPublisher{}
	svc := newTestService(eph, store, pub, nil)

	stored, err := svc.ComputeAndStore(context.Background(), testInput(), "person-1", "person")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("stored chart has no ID")
	}
	if stored.EntityID != "person-1" || stored.EntityType != "person" {
		t.Fatalf("entity linkage lost: %+v", stored)
	}
	if store.inserted != 1 {
		t.Fatalf("%d inserts, want 1", store.inserted)
	}
	if pub.published != 1 {
		t.Fatalf("%d events published, want 1", pub.published)
	}
	if len(stored.Bodies) != 11 || len(stored.Houses) != 12 {
		t.Fatalf("stored chart incomplete: %d bodies, %d houses", len(stored.Bodies), len(stored.Houses))
	}
}

func TestComputeAndStorePublishFailureIsBestEffort(t *testing.T) {
	eph := newStubEphemeris()
	store := newStubStore()
	pub := &stubPublisher{publishErr: context.DeadlineExceeded}
	svc := newTestService(eph, store, pub, nil)

	stored, err := svc.ComputeAndStore(context.Background(), testInput(), "", "")
	if err != nil {
		t.Fatalf("publish failure must not fail the request: %v", err)
	}
	if store.inserted != 1 {
		t.Fatalf("%d inserts, want 1", store.inserted)
	}
	if stored == nil {
		t.Fatal("no stored chart returned")
	}
}

func TestComputeAndStoreInsertFailureFails(t *testing.T) {
	eph := newStubEphemeris()
	store := newStubStore()
	store.insertErr = context.DeadlineExceeded
	svc := newTestService(eph, store, nil, nil)

	if _, err := svc.ComputeAndStore(context.Background(), testInput(), "", ""); err == nil {
		t.Fatal("expected error when the store fails")
	}
}

func TestGetRejectsNonUUID(t *testing.T) {
	svc := newTestService(newStubEphemeris(), newStubStore(), nil, nil)

	_, err := svc.Get(context.Background(), "not-a-uuid")
	if err == nil {
		t.Fatal("expected error for malformed id")
	}
	var ierr *InputError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *InputError, got %T", err)
	}
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	svc := newTestService(newStubEphemeris(), newStubStore(), nil, nil)

	_, err := svc.Get(context.Background(), "a2a1f0e4-1f6e-4f3a-9b1c-2d3e4f5a6b7c")
	if err != ErrChartNotFound {
		t.Fatalf("got %v, want ErrChartNotFound", err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	eph := newStubEphemeris()
	store := newStubStore()
	svc := newTestService(eph, store, nil, nil)

	stored, err := svc.ComputeAndStore(context.Background(), testInput(), "person-2", "person")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Get(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != stored.ID || got.DatetimeUTC != stored.DatetimeUTC {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, stored)
	}

	list, err := svc.List(context.Background(), models.ChartFilter{EntityID: "person-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("%d charts listed, want 1", len(list))
	}
}
