package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"TrueArk/internal/domain/models"
	"TrueArk/internal/domain/repository"
	"TrueArk/pkg/cache"
	applogger "TrueArk/pkg/logger"
)

// ErrChartNotFound is returned when a stored chart ID does not exist.
var ErrChartNotFound = errors.New("chart not found")

// ChartService fronts the engine for every transport: it adds result caching
// (computation is deterministic per input), persistence, and stored-chart
// event publishing. The engine itself stays pure.
type ChartService struct {
	engine   *ChartEngine
	store    repository.ChartStore     // nil when persistence is not configured
	pub      repository.ChartPublisher // nil when eventing is not configured
	cache    cache.Service             // nil disables caching
	cacheTTL time.Duration
	metrics  repository.Metrics
	l        *applogger.Logger
}

func NewChartService(
	engine *ChartEngine,
	store repository.ChartStore,
	pub repository.ChartPublisher,
	c cache.Service,
	cacheTTL time.Duration,
	metrics repository.Metrics,
	l *applogger.Logger,
) *ChartService {
	return &ChartService{
		engine:   engine,
		store:    store,
		pub:      pub,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		l:        l,
	}
}

// Engine exposes the underlying engine for transports that need mode info.
func (s *ChartService) Engine() *ChartEngine { return s.engine }

// Compute returns the chart for an input, serving from cache when possible.
// A cache hit is byte-identical to a recomputation; inputs are only cached
// after a fully validated computation.
func (s *ChartService) Compute(ctx context.Context, in models.ChartInput) (*models.ChartOutput, error) {
	key := chartCacheKey(in)

	if s.cache != nil {
		var raw string
		if err := s.cache.Get(ctx, key, &raw); err == nil {
			var out models.ChartOutput
			if err := json.Unmarshal([]byte(raw), &out); err == nil {
				if s.metrics != nil {
					s.metrics.RecordCacheHit(true)
				}
				return &out, nil
			}
		}
		if s.metrics != nil {
			s.metrics.RecordCacheHit(false)
		}
	}

	out, err := s.engine.Compute(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil && s.l != nil {
				s.l.Warn("chart cache set failed", applogger.Error(err))
			}
		}
	}
	return out, nil
}

// ComputeAndStore computes a chart, persists it, and emits a stored-chart
// event. The event is best-effort: a publish failure is logged and never
// fails the request, but a store failure does.
func (s *ChartService) ComputeAndStore(ctx context.Context, in models.ChartInput, entityID, entityType string) (*models.StoredChart, error) {
	if s.store == nil {
		return nil, fmt.Errorf("chart store not configured")
	}

	out, err := s.Compute(ctx, in)
	if err != nil {
		return nil, err
	}

	stored := &models.StoredChart{
		ID:          uuid.NewString(),
		DatetimeUTC: in.DatetimeUTC,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Bodies:      out.Bodies,
		Angles:      out.Angles,
		Houses:      out.Houses,
		JulianDay:   out.Metadata.JulianDay,
		Mode:        out.Metadata.EphemerisMode,
		EntityID:    entityID,
		EntityType:  entityType,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, stored); err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("store")
		}
		return nil, fmt.Errorf("store chart: %w", err)
	}

	if s.pub != nil {
		if err := s.pub.PublishStored(ctx, stored); err != nil && s.l != nil {
			s.l.Warn("chart event publish failed",
				applogger.String("chart_id", stored.ID),
				applogger.Error(err),
			)
		}
	}
	return stored, nil
}

// Get fetches one stored chart by ID.
func (s *ChartService) Get(ctx context.Context, id string) (*models.StoredChart, error) {
	if s.store == nil {
		return nil, fmt.Errorf("chart store not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, &InputError{Err: fmt.Errorf("chart id %q is not a UUID", id)}
	}
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrChartNotFound
	}
	return c, nil
}

// List returns stored charts matching the filter, newest first.
func (s *ChartService) List(ctx context.Context, f models.ChartFilter) ([]*models.StoredChart, error) {
	if s.store == nil {
		return nil, fmt.Errorf("chart store not configured")
	}
	if f.Limit <= 0 {
		f.Limit = 100
	}
	return s.store.List(ctx, f)
}

// Positions returns the current normalized body positions, for the live
// transit stream. Never cached: the input is the wall clock.
func (s *ChartService) Positions(ctx context.Context, t time.Time) (map[string]models.BodyPosition, error) {
	return s.engine.Positions(ctx, t)
}

// chartCacheKey digests the validated input fields. The ayanamsa field never
// contributes: any non-null value is rejected before a chart can be cached.
func chartCacheKey(in models.ChartInput) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%.8f|%.8f|%s|%s",
		in.DatetimeUTC, in.Latitude, in.Longitude, in.HouseSystem, in.Zodiac)))
	return "chart:" + hex.EncodeToString(h[:16])
}
