package memory

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobsearch/internal/models"
	"jobsearch/internal/search/predicate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func fixture() *Store {
	return New(nil,
		models.Job{ID: "a", Title: "Kế toán", Industry: "Finance", Salary: models.Salary{Max: models.Float64(15)}, CreatedAt: base.Add(-2 * time.Hour), Views: 3},
		models.Job{ID: "b", Title: "Developer", Industry: "Software", Salary: models.Salary{Max: models.Float64(40)}, CreatedAt: base, Views: 10},
		models.Job{ID: "c", Title: "Tester", Industry: "Software", CreatedAt: base.Add(-time.Hour), Views: 10},
	)
}

func ids(jobs []models.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestFindMatching_FilterAndSort(t *testing.T) {
	s := fixture()
	pred := predicate.Eq{Field: predicate.FieldIndustry, Value: "Software"}

	got, err := s.FindMatching(context.Background(), pred, predicate.Sort{Field: predicate.FieldCreatedAt, Desc: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(got))

	count, err := s.CountMatching(context.Background(), pred)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFindMatching_Window(t *testing.T) {
	s := fixture()
	all := predicate.And{}
	byTime := predicate.Sort{Field: predicate.FieldCreatedAt}

	got, err := s.FindMatching(context.Background(), all, byTime, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, ids(got))

	got, err = s.FindMatching(context.Background(), all, byTime, 5, 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = s.FindMatching(context.Background(), all, byTime, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(got))
}

func TestFindMatching_NumericSortPlacesMissingLast(t *testing.T) {
	s := fixture()
	all := predicate.And{}

	asc, err := s.FindMatching(context.Background(), all, predicate.Sort{Field: predicate.FieldSalaryMax}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(asc))

	desc, err := s.FindMatching(context.Background(), all, predicate.Sort{Field: predicate.FieldSalaryMax, Desc: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(desc))
}

func TestFindMatching_StableOnTies(t *testing.T) {
	s := fixture()

	got, err := s.FindMatching(context.Background(), predicate.And{}, predicate.Sort{Field: predicate.FieldViews, Desc: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
}

func TestFindMatching_UnknownSortKeepsInsertionOrder(t *testing.T) {
	s := fixture()

	got, err := s.FindMatching(context.Background(), predicate.And{}, predicate.Sort{Field: "salary.currency"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestFindMatching_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fixture().FindMatching(ctx, predicate.And{}, predicate.Sort{}, 0, 10)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = fixture().CountMatching(ctx, predicate.And{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "1", "title": "Kế toán", "location": {"city": "Hà Nội"}, "salary": {"min": 10000000}},
		{"id": "2", "title": "Developer"}
	]`), 0o644))

	s, err := Load(path, nil)
	require.NoError(t, err)

	count, err := s.CountMatching(context.Background(), predicate.Eq{Field: predicate.FieldCity, Value: "Hà Nội"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0o644))
	_, err = Load(path, nil)
	assert.Error(t, err)
}
