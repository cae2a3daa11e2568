package postgres

import (
	"testing"
	"time"

	"jobsearch/internal/models"
	"jobsearch/internal/search/predicate"

	"github.com/gocraft/dbr/v2"
	"github.com/gocraft/dbr/v2/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func render(t *testing.T, e predicate.Expr) string {
	t.Helper()

	cond, err := Translate(e)
	require.NoError(t, err)

	buf := dbr.NewBuffer()
	require.NoError(t, cond.Build(dialect.PostgreSQL, buf))

	sql, err := dbr.InterpolateForDialect(buf.String(), buf.Value(), dialect.PostgreSQL)
	require.NoError(t, err)
	return sql
}

func TestTranslate_Leaves(t *testing.T) {
	tests := []struct {
		name string
		expr predicate.Expr
		want []string
	}{
		{
			name: "eq",
			expr: predicate.Eq{Field: predicate.FieldCity, Value: "Hà Nội"},
			want: []string{`"city"`, `= 'Hà Nội'`},
		},
		{
			name: "in",
			expr: predicate.In{Field: predicate.FieldExperience, Values: []string{"junior", "senior"}},
			want: []string{"experience = ANY(", "junior", "senior"},
		},
		{
			name: "contains",
			expr: predicate.Contains{Field: predicate.FieldTitle, Term: "it"},
			want: []string{"title ILIKE '%it%'"},
		},
		{
			name: "gte",
			expr: predicate.Compare{Field: predicate.FieldSalaryMax, Op: predicate.OpGte, Value: 40},
			want: []string{`"salary_max" >= 40`},
		},
		{
			name: "lte",
			expr: predicate.Compare{Field: predicate.FieldSalaryMin, Op: predicate.OpLte, Value: 60},
			want: []string{`"salary_min" <= 60`},
		},
		{
			name: "after",
			expr: predicate.After{Field: predicate.FieldDeadline, Time: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
			want: []string{`"deadline" > '2026-10-19`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := render(t, tt.expr)
			for _, fragment := range tt.want {
				assert.Contains(t, sql, fragment)
			}
		})
	}
}

func TestTranslate_Tree(t *testing.T) {
	expr := predicate.And{Terms: []predicate.Expr{
		predicate.Eq{Field: predicate.FieldJobType, Value: "remote"},
		predicate.Or{Terms: []predicate.Expr{
			predicate.Contains{Field: predicate.FieldTitle, Term: "dev"},
			predicate.Contains{Field: predicate.FieldDescription, Term: "dev"},
		}},
	}}

	sql := render(t, expr)

	assert.Contains(t, sql, `"job_type" = 'remote'`)
	assert.Contains(t, sql, " AND ")
	assert.Contains(t, sql, " OR ")
	assert.Contains(t, sql, "description ILIKE '%dev%'")
}

func TestTranslate_EmptyConnectives(t *testing.T) {
	assert.Equal(t, "TRUE", render(t, predicate.And{}))
	assert.Equal(t, "FALSE", render(t, predicate.Or{}))
}

func TestTranslate_UnknownField(t *testing.T) {
	_, err := Translate(predicate.And{Terms: []predicate.Expr{
		predicate.Eq{Field: predicate.Field("salary.currency"), Value: "VND"},
	}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "salary.currency")
}

func TestTranslate_UnknownOperator(t *testing.T) {
	_, err := Translate(predicate.Compare{Field: predicate.FieldViews, Op: predicate.Op("<>"), Value: 1})
	assert.Error(t, err)
}

func TestTranslate_DecomposedTermIsComposed(t *testing.T) {
	decomposed := norm.NFD.String("kế toán")
	require.NotEqual(t, "kế toán", decomposed)

	sql := render(t, predicate.Contains{Field: predicate.FieldTitle, Term: decomposed})
	assert.Contains(t, sql, "title ILIKE '%kế toán%'")
}

func TestStoredJob_ComposesText(t *testing.T) {
	in := models.Job{
		ID:          "j1",
		Title:       norm.NFD.String("Kế toán trưởng"),
		Description: norm.NFD.String("Quản lý sổ sách"),
	}

	got := storedJob(in)
	assert.Equal(t, "Kế toán trưởng", got.Title)
	assert.Equal(t, "Quản lý sổ sách", got.Description)
	assert.Equal(t, norm.NFD.String("Kế toán trưởng"), in.Title, "input is not modified")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", EscapeLike("plain"))
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
}

func TestJobRowToModel(t *testing.T) {
	city := "Đà Nẵng"
	min := 10.0
	row := jobRow{
		ID:        "j1",
		Title:     "Kế toán",
		City:      &city,
		SalaryMin: &min,
	}

	job := row.toModel()

	assert.Equal(t, "j1", job.ID)
	assert.Equal(t, "Đà Nẵng", job.Location.City)
	assert.Empty(t, job.Location.Region)
	require.NotNil(t, job.Salary.Min)
	assert.Equal(t, 10.0, *job.Salary.Min)
	assert.Nil(t, job.Salary.Max)
}
