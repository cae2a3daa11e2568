// Package search turns raw job-search parameters into one store query and
// assembles the resulting page.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobsearch/internal/models"
	"jobsearch/internal/search/city"
	"jobsearch/internal/search/predicate"
	"jobsearch/internal/search/synonym"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Store is the document store the service queries.
type Store interface {
	FindMatching(ctx context.Context, pred predicate.Expr, sort predicate.Sort, skip, limit int) ([]models.Job, error)
	CountMatching(ctx context.Context, pred predicate.Expr) (int, error)
}

// PageCache stores assembled pages. GetPage returns nil, nil on a miss.
type PageCache interface {
	GetPage(ctx context.Context, key string) (*Page, error)
	SetPage(ctx context.Context, key string, page *Page) error
}

// Service is stateless between calls and safe for concurrent use.
type Service struct {
	store     Store
	builder   *Builder
	gazetteer *city.Gazetteer
	cache     PageCache
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*Service)

// WithClock overrides the time source used for the deadline term.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPageCache enables result caching.
func WithPageCache(cache PageCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithTimeout bounds the store round-trip.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(store Store, synonyms *synonym.Table, gazetteer *city.Gazetteer, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if synonyms == nil {
		return nil, ErrSynonymsRequired
	}
	if gazetteer == nil {
		return nil, ErrGazetteerRequired
	}

	s := &Service{
		store:     store,
		builder:   NewBuilder(synonyms),
		gazetteer: gazetteer,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Normalize validates raw params. Invalid dimensions are dropped, never
// reported as errors.
func (s *Service) Normalize(p Params) Filters {
	f := Filters{
		Keyword:  strings.TrimSpace(p.Keyword),
		Industry: strings.TrimSpace(p.Industry),
		Region:   strings.TrimSpace(p.Region),
		JobType:  strings.TrimSpace(p.JobType),
		Sort:     ResolveSort(p.Sort),
		Page:     ParsePage(p.Page),
		Limit:    ParseLimit(p.Limit),
	}

	if raw := strings.TrimSpace(p.City); raw != "" {
		if canonical, ok := s.gazetteer.Normalize(raw); ok {
			f.City = canonical
		} else {
			s.logger.Debug("city filter dropped", zap.String("city", raw))
		}
	}

	f.Experience, f.ExperienceList = ParseExperience(p.Experience)
	if f.ExperienceList && len(f.Experience) == 0 {
		s.logger.Debug("experience filter dropped", zap.String("experience", p.Experience))
	}

	f.SalaryMin = ParseAmount(p.MinSalary)
	if f.SalaryMin == nil && strings.TrimSpace(p.MinSalary) != "" {
		s.logger.Debug("min salary filter dropped", zap.String("minSalary", p.MinSalary))
	}
	f.SalaryMax = ParseAmount(p.MaxSalary)
	if f.SalaryMax == nil && strings.TrimSpace(p.MaxSalary) != "" {
		s.logger.Debug("max salary filter dropped", zap.String("maxSalary", p.MaxSalary))
	}

	return f
}

// Build exposes the predicate for already normalized filters.
func (s *Service) Build(f Filters) predicate.Expr {
	return s.builder.Build(f, s.now())
}

// Search runs one query against the store. Store failures are returned
// wrapped in ErrStore; there are no retries and no partial pages.
func (s *Service) Search(ctx context.Context, p Params) (*Page, error) {
	f := s.Normalize(p)
	return s.SearchFilters(ctx, f)
}

// SearchFilters is Search for already normalized filters.
func (s *Service) SearchFilters(ctx context.Context, f Filters) (*Page, error) {
	pred := s.builder.Build(f, s.now())
	skip, limit := Paginate(f.Page, f.Limit)

	key := CacheKey(f, skip, limit)
	if page := s.cachedPage(ctx, key); page != nil {
		return page, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	items, err := s.store.FindMatching(ctx, pred, f.Sort, skip, limit)
	if err != nil {
		s.logger.Error("failed to find matching jobs",
			zap.String("keyword", f.Keyword),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: find matching: %w", ErrStore, err)
	}

	total, err := s.store.CountMatching(ctx, pred)
	if err != nil {
		s.logger.Error("failed to count matching jobs",
			zap.String("keyword", f.Keyword),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: count matching: %w", ErrStore, err)
	}

	page := PageMeta(total, f.Page, limit)
	if items != nil {
		page.Items = items
	}

	s.logger.Debug("search completed",
		zap.String("keyword", f.Keyword),
		zap.String("city", f.City),
		zap.Int("page", page.CurrentPage),
		zap.Int("returned", len(page.Items)),
		zap.Int("total", page.TotalCount),
	)

	s.storePage(ctx, key, &page)

	return &page, nil
}

func (s *Service) cachedPage(ctx context.Context, key string) *Page {
	if s.cache == nil {
		return nil
	}
	page, err := s.cache.GetPage(ctx, key)
	if err != nil {
		s.logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return page
}

func (s *Service) storePage(ctx context.Context, key string, page *Page) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetPage(ctx, key, page); err != nil {
		s.logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// CacheKey identifies a normalized request. The deadline instant is not
// part of it; the cache TTL bounds how stale the open-jobs term can get.
func CacheKey(f Filters, skip, limit int) string {
	var sb strings.Builder
	field := func(v string) {
		sb.WriteString(v)
		sb.WriteByte(0)
	}
	amount := func(v *float64) {
		if v == nil {
			field("")
			return
		}
		field(fmt.Sprintf("%g", *v))
	}

	field(synonym.Normalize(f.Keyword))
	field(f.Industry)
	field(f.City)
	field(f.Region)
	field(f.JobType)
	field(fmt.Sprintf("%t", f.ExperienceList))
	field(strings.Join(f.Experience, "\x1f"))
	amount(f.SalaryMin)
	amount(f.SalaryMax)
	field(string(f.Sort.Field))
	field(fmt.Sprintf("%t", f.Sort.Desc))
	field(fmt.Sprintf("%d:%d", skip, limit))

	return fmt.Sprintf("%016x", xxhash.Sum64String(sb.String()))
}
