package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"jobsearch/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

const filtersTable = "user_filters"

var ErrFilterNotFound = errors.New("filter not found")

var filterColumns = []string{"id", "user_id", "filter_type", "filter_value", "created_at"}

// GetUserFilters returns the saved search of a user, one row per dimension.
func (s *Store) GetUserFilters(ctx context.Context, userID int64) ([]models.UserFilter, error) {
	var filters []models.UserFilter

	_, err := s.sess.
		Select(filterColumns...).
		From(filtersTable).
		Where(dbr.Eq("user_id", userID)).
		OrderBy("filter_type").
		LoadContext(ctx, &filters)

	if err != nil {
		s.logger.Error("failed to get user filters",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user filters: %w", err)
	}

	return filters, nil
}

// GetFiltersMap returns the saved search keyed by filter type, the shape
// search.ParamsFromFilters expects.
func (s *Store) GetFiltersMap(ctx context.Context, userID int64) (map[string]string, error) {
	filters, err := s.GetUserFilters(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(filters))
	for _, f := range filters {
		m[f.FilterType] = f.FilterValue
	}

	return m, nil
}

func (s *Store) DeleteFilter(ctx context.Context, userID int64, filterType string) error {
	res, err := s.sess.
		DeleteFrom(filtersTable).
		Where(dbr.And(dbr.Eq("user_id", userID), dbr.Eq("filter_type", filterType))).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("delete filter %s: %w", filterType, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFilterNotFound
	}

	s.logger.Info("filter deleted",
		zap.Int64("user_id", userID),
		zap.String("filter_type", filterType),
	)

	return nil
}

func (s *Store) ClearUserFilters(ctx context.Context, userID int64) error {
	res, err := s.sess.
		DeleteFrom(filtersTable).
		Where(dbr.Eq("user_id", userID)).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("clear user filters: %w", err)
	}

	n, _ := res.RowsAffected()
	s.logger.Info("user filters cleared",
		zap.Int64("user_id", userID),
		zap.Int64("count", n),
	)

	return nil
}

// ReplaceFilters swaps a user's saved search for filters in one
// transaction. Unknown filter types and empty values are skipped.
func (s *Store) ReplaceFilters(ctx context.Context, userID int64, filters map[string]string) error {
	types := make([]string, 0, len(filters))
	for filterType, value := range filters {
		if models.IsValidFilterType(filterType) && value != "" {
			types = append(types, filterType)
		}
	}
	sort.Strings(types)

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	if _, err := tx.DeleteFrom(filtersTable).
		Where(dbr.Eq("user_id", userID)).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("replace filters: %w", err)
	}

	if len(types) > 0 {
		stmt := tx.InsertInto(filtersTable).Columns("user_id", "filter_type", "filter_value")
		for _, filterType := range types {
			stmt = stmt.Values(userID, filterType, filters[filterType])
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			s.logger.Error("failed to insert filters",
				zap.Int64("user_id", userID),
				zap.Strings("filter_types", types),
				zap.Error(err),
			)
			return fmt.Errorf("replace filters: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit filters: %w", err)
	}

	s.logger.Info("user filters replaced",
		zap.Int64("user_id", userID),
		zap.Strings("filter_types", types),
	)

	return nil
}
