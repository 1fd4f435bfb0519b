package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/stats"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type statsUseCase struct {
	repo   stats.Repository
	logger logger.ZapLogger
}

func NewStatsUseCase(repo stats.Repository, log logger.ZapLogger) stats.UseCase {
	return &statsUseCase{repo: repo, logger: log}
}

func (uc *statsUseCase) Dashboard(ctx context.Context) *stats.Dashboard {
	var (
		mu     sync.Mutex
		counts = make(map[stats.Counter]int, len(stats.Counters))
		g      errgroup.Group
	)
	for _, c := range stats.Counters {
		g.Go(func() error {
			n, err := uc.repo.Count(ctx, c)
			if err != nil {
				uc.logger.Warn("dashboard counter unavailable", zap.String("counter", string(c)), zap.Error(err))
				n = 0
			}
			mu.Lock()
			counts[c] = n
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return &stats.Dashboard{
		Categories:      counts[stats.CounterCategories],
		Characteristics: counts[stats.CounterCharacteristics],
		Products:        counts[stats.CounterProducts],
		Filters:         counts[stats.CounterFilters],
	}
}
