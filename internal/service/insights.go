package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/moodlens/backend/internal/config"
	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
	"github.com/moodlens/backend/internal/repository"
)

// backgroundRefreshTimeout bounds the fire-and-forget recomputation that
// runs after a data change.
const backgroundRefreshTimeout = 30 * time.Second

// cachedInsights is one computed response pinned to the data version it
// was computed from.
type cachedInsights struct {
	response   models.InsightsResponse
	version    uint64
	computedAt time.Time
}

type insightService struct {
	moodRepo    repository.MoodRepository
	contextRepo repository.ContextRepository
	clk         clockNow
	cfg         config.AnalyticsConfig
	detectors   []Detector

	group singleflight.Group

	// version counts data changes. The cache is valid only while its
	// pinned version still matches, so no write ever serves stale
	// insights regardless of TTL.
	version atomic.Uint64

	mu    sync.Mutex
	cache *cachedInsights
}

// NewInsightService creates a new insight engine over the standard detector
// set: streaks, trend, factor correlations, and the mood forecast.
func NewInsightService(moodRepo repository.MoodRepository, contextRepo repository.ContextRepository, clk clockNow, cfg config.AnalyticsConfig) InsightEngine {
	return &insightService{
		moodRepo:    moodRepo,
		contextRepo: contextRepo,
		clk:         clk,
		cfg:         cfg,
		detectors: []Detector{
			StreakDetector{},
			TrendDetector{},
			CorrelationDetector{},
			ForecastDetector{
				OverallWeight: cfg.ForecastOverallWeight,
				WeekdayWeight: cfg.ForecastWeekdayWeight,
			},
		},
	}
}

// GenerateInsights returns the current insight set, serving from cache when
// the underlying data has not changed since the last computation and the
// TTL backstop has not expired. Concurrent cache misses share a single
// computation.
func (s *insightService) GenerateInsights(ctx context.Context, forceRefresh bool) (*models.InsightsResponse, error) {
	if !forceRefresh {
		if resp, ok := s.cachedResponse(); ok {
			return resp, nil
		}
	}

	// Forced and unforced computations coalesce separately so a forced
	// refresh can never be satisfied by a cache hit.
	key := fmt.Sprintf("insights:force=%t", forceRefresh)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if !forceRefresh {
			if resp, ok := s.cachedResponse(); ok {
				return resp, nil
			}
		}
		return s.computeInsights(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.InsightsResponse), nil
}

// GenerateCorrelationInsights runs the factor correlation analysis alone
// over the trailing windowDays, bypassing the insight cache. A windowDays
// of zero or below falls back to the configured window.
func (s *insightService) GenerateCorrelationInsights(ctx context.Context, windowDays int) ([]models.CorrelationInsight, error) {
	if windowDays <= 0 {
		windowDays = s.cfg.InsightWindowDays
	}

	today := models.Day(s.clk.Now())
	start := today.AddDate(0, 0, -(windowDays - 1))

	records, err := s.moodRepo.GetRange(ctx, start, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}
	contexts, err := s.contextRepo.GetRange(ctx, start, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load context records: %w", err)
	}

	aggregates := BuildDayAggregates(records, start, today)
	return AnalyzeCorrelations(contexts, moodByDate(aggregates), s.cfg.CorrelationMinSample, s.cfg.CorrelationMinStrength), nil
}

// NotifyDataChanged bumps the data version, invalidating the cache, and
// kicks off a background recomputation so the next read is warm.
func (s *insightService) NotifyDataChanged() {
	s.version.Add(1)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
		defer cancel()
		if _, err := s.GenerateInsights(ctx, false); err != nil {
			logger.Warn("background insight refresh failed", logger.Err(err))
		}
	}()
}

// cachedResponse returns the cached insight set when it is still valid:
// computed from the current data version and younger than the TTL.
func (s *insightService) cachedResponse() (*models.InsightsResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		return nil, false
	}
	if s.cache.version != s.version.Load() {
		return nil, false
	}
	if s.clk.Now().Sub(s.cache.computedAt) >= s.cfg.InsightCacheTTL {
		return nil, false
	}

	resp := s.cache.response
	resp.FromCache = true
	return &resp, true
}

// computeInsights runs every detector over a fresh view of the data and
// caches the merged result. The data version is captured before any read so
// a write landing mid-computation leaves the stored cache already stale.
func (s *insightService) computeInsights(ctx context.Context) (*models.InsightsResponse, error) {
	version := s.version.Load()
	now := s.clk.Now()
	today := models.Day(now)
	windowStart := today.AddDate(0, 0, -(s.cfg.InsightWindowDays - 1))

	records, err := s.moodRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood records: %w", err)
	}

	history := BuildDayAggregates(records, historyStart(records, windowStart), today)
	window := filterRange(history, windowStart, today)
	stats := calculateStatistics(window, history, now, s.cfg.TrendThreshold)

	// Correlations degrade to empty rather than failing the whole
	// generation; the mood-only detectors still have plenty to say.
	var correlations []models.CorrelationInsight
	contexts, err := s.contextRepo.GetRange(ctx, windowStart, today)
	if err != nil {
		logger.Warn("failed to load context records, skipping correlations", logger.Err(err))
	} else {
		correlations = AnalyzeCorrelations(contexts, moodByDate(window), s.cfg.CorrelationMinSample, s.cfg.CorrelationMinStrength)
	}

	dw := DetectionWindow{
		Days:         window,
		History:      history,
		Stats:        stats,
		Correlations: correlations,
		Now:          now,
	}

	candidates := make([]models.SmartInsight, 0, 16)
	for _, d := range s.detectors {
		found := d.Detect(dw)
		logger.Debug("detector ran",
			logger.String("detector", d.Name()),
			logger.Int("insights", len(found)))
		candidates = append(candidates, found...)
	}

	resp := &models.InsightsResponse{
		Insights:   MergeInsights(candidates, s.cfg.MaxInsights),
		ComputedAt: now,
		FromCache:  false,
	}

	s.mu.Lock()
	s.cache = &cachedInsights{response: *resp, version: version, computedAt: now}
	s.mu.Unlock()

	return resp, nil
}

// MergeInsights collapses duplicate (type, subject) candidates onto the
// higher-priority one, orders the survivors for display, and caps the list.
func MergeInsights(candidates []models.SmartInsight, limit int) []models.SmartInsight {
	type dedupeKey struct {
		insightType models.InsightType
		subject     string
	}

	index := make(map[dedupeKey]int, len(candidates))
	merged := make([]models.SmartInsight, 0, len(candidates))
	for _, ins := range candidates {
		k := dedupeKey{ins.Type, ins.Subject}
		if i, ok := index[k]; ok {
			if ins.Priority.Rank() > merged[i].Priority.Rank() {
				merged[i] = ins
			}
			continue
		}
		index[k] = len(merged)
		merged = append(merged, ins)
	}

	// Priority first, confident before tentative, newest first; stable so
	// detector order breaks remaining ties deterministically
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if ac, bc := confidenceValue(a.Confidence), confidenceValue(b.Confidence); ac != bc {
			return ac > bc
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// confidenceValue orders nil confidence after every stated confidence.
func confidenceValue(c *float64) float64 {
	if c == nil {
		return -1
	}
	return *c
}

// moodByDate indexes day averages by date string for the days that have
// any mood data.
func moodByDate(aggregates []models.DayAggregate) map[string]float64 {
	m := make(map[string]float64, len(aggregates))
	for _, agg := range aggregates {
		if agg.HasAnyMood {
			m[models.FormatDate(agg.Date)] = agg.DayAverage
		}
	}
	return m
}
