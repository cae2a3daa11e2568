// Package memory is an in-process job store that evaluates predicates
// directly. It backs tests and the "memory" store driver.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"jobsearch/internal/models"
	"jobsearch/internal/search/predicate"

	"go.uber.org/zap"
)

type Store struct {
	mu     sync.RWMutex
	jobs   []models.Job
	logger *zap.Logger
}

func New(logger *zap.Logger, jobs ...models.Job) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{logger: logger}
	s.Add(jobs...)
	return s
}

// Load seeds a store from a JSON array of jobs at path.
func Load(path string, logger *zap.Logger) (*Store, error) {
	jobs, err := ReadJobs(path)
	if err != nil {
		return nil, err
	}

	s := New(logger, jobs...)
	s.logger.Info("memory store seeded",
		zap.String("path", path),
		zap.Int("count", len(jobs)),
	)

	return s, nil
}

// ReadJobs decodes a JSON array of jobs.
func ReadJobs(path string) ([]models.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	return jobs, nil
}

func (s *Store) Add(jobs ...models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, jobs...)
}

func (s *Store) FindMatching(ctx context.Context, pred predicate.Expr, order predicate.Sort, skip, limit int) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := s.match(pred)
	s.sortJobs(matched, order)

	if skip >= len(matched) {
		return []models.Job{}, nil
	}
	end := len(matched)
	if limit > 0 && limit < end-skip {
		end = skip + limit
	}

	return matched[skip:end], nil
}

func (s *Store) CountMatching(ctx context.Context, pred predicate.Expr) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.match(pred)), nil
}

func (s *Store) match(pred predicate.Expr) []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Job, 0)
	for i := range s.jobs {
		if predicate.Eval(pred, &s.jobs[i]) {
			out = append(out, s.jobs[i])
		}
	}
	return out
}

// sortJobs orders by a time, number or text field. A field the job model
// does not have leaves insertion order.
func (s *Store) sortJobs(jobs []models.Job, order predicate.Sort) {
	less, ok := comparator(order.Field)
	if !ok {
		s.logger.Debug("unsortable field, keeping insertion order",
			zap.String("field", string(order.Field)),
		)
		return
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		if order.Desc {
			return less(&jobs[j], &jobs[i])
		}
		return less(&jobs[i], &jobs[j])
	})
}

func comparator(field predicate.Field) (func(a, b *models.Job) bool, bool) {
	switch field {
	case predicate.FieldCreatedAt, predicate.FieldDeadline:
		return func(a, b *models.Job) bool {
			at, _ := a.Time(field)
			bt, _ := b.Time(field)
			return at.Before(bt)
		}, true
	case predicate.FieldSalaryMin, predicate.FieldSalaryMax, predicate.FieldViews:
		// absent numbers compare greater, as NULL does in PostgreSQL
		return func(a, b *models.Job) bool {
			av, aok := a.Number(field)
			bv, bok := b.Number(field)
			if aok != bok {
				return aok
			}
			return av < bv
		}, true
	case predicate.FieldTitle, predicate.FieldDescription, predicate.FieldIndustry,
		predicate.FieldCity, predicate.FieldRegion, predicate.FieldJobType, predicate.FieldExperience:
		return func(a, b *models.Job) bool {
			av, _ := a.Text(field)
			bv, _ := b.Text(field)
			return strings.Compare(av, bv) < 0
		}, true
	}
	return nil, false
}
