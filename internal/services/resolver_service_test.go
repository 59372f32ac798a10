package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lokalBack/internal/directory"
	"lokalBack/internal/models"
)

func fp(v float64) *float64 { return &v }

type fakeGeocoder struct {
	lat, lon float64
	block    chan struct{} // when non-nil, Geocode waits until closed
}

func (f *fakeGeocoder) Geocode(ctx context.Context, _ string) (float64, float64, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		}
	}
	return f.lat, f.lon, nil
}

func waitForIdle(t *testing.T, svc *ResolverService) ResolveStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		st := svc.Status()
		if !st.Running {
			return st
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("resolution pass did not finish in time")
	return ResolveStatus{}
}

func TestResolverServiceAnnotatesSnapshot(t *testing.T) {
	listings := []models.Business{
		{ID: 1, Address: "Calle 1", Latitude: fp(19.1), Longitude: fp(-99.1)},
		{ID: 2, Address: "Calle 2 lat:19.2 lon:-99.2"},
		{ID: 3, Address: "Calle 3"},
	}
	snapshot := directory.NewSnapshot()
	snapshot.Replace(listings)

	svc := NewResolverService(snapshot, &fakeGeocoder{lat: 19.3, lon: -99.3}, nil, nil)
	if err := svc.Start(context.Background(), listings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := waitForIdle(t, svc)
	if st.Done != 3 || st.Resolved != 3 || st.Total != 3 {
		t.Fatalf("expected 3/3 resolved, got %+v", st)
	}

	wantLat := map[int]float64{1: 19.1, 2: 19.2, 3: 19.3}
	for _, b := range snapshot.All() {
		if b.ResolvedLat == nil || *b.ResolvedLat != wantLat[b.ID] {
			t.Fatalf("listing %d not annotated as expected: %+v", b.ID, b.ResolvedLat)
		}
	}
}

func TestResolverServiceSingleRun(t *testing.T) {
	block := make(chan struct{})
	geocoder := &fakeGeocoder{lat: 1, lon: 1, block: block}

	listings := []models.Business{{ID: 1, Address: "Calle 1"}}
	snapshot := directory.NewSnapshot()
	snapshot.Replace(listings)

	svc := NewResolverService(snapshot, geocoder, nil, nil)
	if err := svc.Start(context.Background(), listings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Start(context.Background(), listings); !errors.Is(err, ErrResolveRunning) {
		t.Fatalf("expected ErrResolveRunning, got %v", err)
	}

	close(block)
	waitForIdle(t, svc)

	// A finished pass allows a new one.
	if err := svc.Start(context.Background(), listings); err != nil {
		t.Fatalf("expected restart after completion, got %v", err)
	}
	waitForIdle(t, svc)
}

func TestResolverServiceCancel(t *testing.T) {
	block := make(chan struct{})
	geocoder := &fakeGeocoder{lat: 1, lon: 1, block: block}
	defer close(block)

	listings := []models.Business{
		{ID: 1, Address: "Calle 1"},
		{ID: 2, Address: "Calle 2"},
	}
	snapshot := directory.NewSnapshot()
	snapshot.Replace(listings)

	svc := NewResolverService(snapshot, geocoder, nil, nil)
	if err := svc.Start(context.Background(), listings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.Cancel()
	st := waitForIdle(t, svc)
	if st.Resolved != 0 {
		t.Fatalf("expected no listings resolved after cancel, got %d", st.Resolved)
	}
}
