package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/stats"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
)

type stubRepo struct {
	counts map[stats.Counter]int
	failed map[stats.Counter]bool
}

func (r *stubRepo) Count(_ context.Context, c stats.Counter) (int, error) {
	if r.failed[c] {
		return 0, errors.New("relation does not exist")
	}
	return r.counts[c], nil
}

func TestDashboardCounts(t *testing.T) {
	repo := &stubRepo{counts: map[stats.Counter]int{
		stats.CounterCategories:      3,
		stats.CounterCharacteristics: 12,
		stats.CounterProducts:        40,
		stats.CounterFilters:         5,
	}}
	got := NewStatsUseCase(repo, logger.NewNop()).Dashboard(context.Background())
	want := stats.Dashboard{Categories: 3, Characteristics: 12, Products: 40, Filters: 5}
	if *got != want {
		t.Errorf("dashboard = %+v, want %+v", *got, want)
	}
}

func TestDashboardDefaultsFailedCountersToZero(t *testing.T) {
	repo := &stubRepo{
		counts: map[stats.Counter]int{stats.CounterCategories: 3, stats.CounterProducts: 40},
		failed: map[stats.Counter]bool{stats.CounterProducts: true, stats.CounterFilters: true},
	}
	got := NewStatsUseCase(repo, logger.NewNop()).Dashboard(context.Background())
	if got.Categories != 3 || got.Products != 0 || got.Filters != 0 {
		t.Errorf("dashboard = %+v", *got)
	}
}
