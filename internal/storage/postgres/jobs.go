package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobsearch/internal/models"
	"jobsearch/internal/search/predicate"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const jobsTable = "jobs"

// fieldColumns maps predicate fields to jobs columns. Only these names
// ever reach SQL text.
var fieldColumns = map[predicate.Field]string{
	predicate.FieldTitle:       "title",
	predicate.FieldDescription: "description",
	predicate.FieldIndustry:    "industry",
	predicate.FieldCity:        "city",
	predicate.FieldRegion:      "region",
	predicate.FieldJobType:     "job_type",
	predicate.FieldExperience:  "experience",
	predicate.FieldSalaryMin:   "salary_min",
	predicate.FieldSalaryMax:   "salary_max",
	predicate.FieldDeadline:    "deadline",
	predicate.FieldCreatedAt:   "created_at",
	predicate.FieldViews:       "views",
}

var jobColumns = []string{
	"id", "title", "description", "industry", "company_name",
	"city", "region", "latitude", "longitude",
	"salary_min", "salary_max", "currency",
	"job_type", "experience", "deadline", "views", "status", "created_at",
}

type jobRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Industry    *string   `db:"industry"`
	CompanyName *string   `db:"company_name"`
	City        *string   `db:"city"`
	Region      *string   `db:"region"`
	Latitude    *float64  `db:"latitude"`
	Longitude   *float64  `db:"longitude"`
	SalaryMin   *float64  `db:"salary_min"`
	SalaryMax   *float64  `db:"salary_max"`
	Currency    *string   `db:"currency"`
	JobType     *string   `db:"job_type"`
	Experience  *string   `db:"experience"`
	Deadline    time.Time `db:"deadline"`
	Views       int       `db:"views"`
	Status      *string   `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *jobRow) toModel() models.Job {
	return models.Job{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Industry:    deref(r.Industry),
		CompanyName: deref(r.CompanyName),
		Location: models.Location{
			City:      deref(r.City),
			Region:    deref(r.Region),
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		Salary: models.Salary{
			Min:      r.SalaryMin,
			Max:      r.SalaryMax,
			Currency: deref(r.Currency),
		},
		JobType:    deref(r.JobType),
		Experience: deref(r.Experience),
		Deadline:   r.Deadline,
		Views:      r.Views,
		Status:     deref(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FindMatching loads one page of jobs satisfying pred. A sort field without
// a column is skipped; rows are always tie-broken by id.
func (s *Store) FindMatching(ctx context.Context, pred predicate.Expr, sort predicate.Sort, skip, limit int) ([]models.Job, error) {
	cond, err := Translate(pred)
	if err != nil {
		return nil, fmt.Errorf("translate predicate: %w", err)
	}

	stmt := s.sess.
		Select(jobColumns...).
		From(jobsTable).
		Where(cond)

	if column, ok := fieldColumns[sort.Field]; ok {
		stmt = stmt.OrderDir(column, !sort.Desc)
	} else {
		s.logger.Debug("sort field has no column, ignoring",
			zap.String("field", string(sort.Field)),
		)
	}
	stmt = stmt.OrderDir("id", true)

	if skip > 0 {
		stmt = stmt.Offset(uint64(skip))
	}
	if limit > 0 {
		stmt = stmt.Limit(uint64(limit))
	}

	var rows []jobRow
	if _, err := stmt.LoadContext(ctx, &rows); err != nil {
		s.logger.Error("failed to find matching jobs",
			zap.Int("skip", skip),
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return nil, fmt.Errorf("find matching jobs: %w", err)
	}

	jobs := make([]models.Job, len(rows))
	for i := range rows {
		jobs[i] = rows[i].toModel()
	}

	return jobs, nil
}

func (s *Store) CountMatching(ctx context.Context, pred predicate.Expr) (int, error) {
	cond, err := Translate(pred)
	if err != nil {
		return 0, fmt.Errorf("translate predicate: %w", err)
	}

	var count int
	err = s.sess.
		Select("COUNT(*)").
		From(jobsTable).
		Where(cond).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count matching jobs", zap.Error(err))
		return 0, fmt.Errorf("count matching jobs: %w", err)
	}

	return count, nil
}

// Translate converts a predicate into a dbr condition.
func Translate(e predicate.Expr) (dbr.Builder, error) {
	switch n := e.(type) {
	case predicate.Eq:
		column, err := columnFor(n.Field)
		if err != nil {
			return nil, err
		}
		return dbr.Eq(column, n.Value), nil
	case predicate.In:
		column, err := columnFor(n.Field)
		if err != nil {
			return nil, err
		}
		return dbr.Expr(column+" = ANY(?)", pq.Array(n.Values)), nil
	case predicate.Contains:
		column, err := columnFor(n.Field)
		if err != nil {
			return nil, err
		}
		// Stored text is NFC (see UpsertJobs), so the term must be too.
		return dbr.Expr(column+" ILIKE ?", "%"+EscapeLike(norm.NFC.String(n.Term))+"%"), nil
	case predicate.Compare:
		column, err := columnFor(n.Field)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case predicate.OpGte:
			return dbr.Gte(column, n.Value), nil
		case predicate.OpLte:
			return dbr.Lte(column, n.Value), nil
		}
		return nil, fmt.Errorf("unsupported operator %q", n.Op)
	case predicate.After:
		column, err := columnFor(n.Field)
		if err != nil {
			return nil, err
		}
		return dbr.Gt(column, n.Time), nil
	case predicate.And:
		if len(n.Terms) == 0 {
			return dbr.Expr("TRUE"), nil
		}
		conds, err := translateAll(n.Terms)
		if err != nil {
			return nil, err
		}
		return dbr.And(conds...), nil
	case predicate.Or:
		if len(n.Terms) == 0 {
			return dbr.Expr("FALSE"), nil
		}
		conds, err := translateAll(n.Terms)
		if err != nil {
			return nil, err
		}
		return dbr.Or(conds...), nil
	default:
		return nil, fmt.Errorf("unsupported predicate %T", e)
	}
}

func translateAll(terms []predicate.Expr) ([]dbr.Builder, error) {
	out := make([]dbr.Builder, 0, len(terms))
	for _, t := range terms {
		b, err := Translate(t)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func columnFor(f predicate.Field) (string, error) {
	column, ok := fieldColumns[f]
	if !ok {
		return "", fmt.Errorf("unknown field %q", f)
	}
	return column, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so a term matches literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

const upsertJobSQL = `
	INSERT INTO jobs (
		id, title, description, industry, company_name,
		city, region, latitude, longitude,
		salary_min, salary_max, currency,
		job_type, experience, deadline, views, status, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		industry = EXCLUDED.industry,
		company_name = EXCLUDED.company_name,
		city = EXCLUDED.city,
		region = EXCLUDED.region,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		salary_min = EXCLUDED.salary_min,
		salary_max = EXCLUDED.salary_max,
		currency = EXCLUDED.currency,
		job_type = EXCLUDED.job_type,
		experience = EXCLUDED.experience,
		deadline = EXCLUDED.deadline,
		views = EXCLUDED.views,
		status = EXCLUDED.status
`

// storedJob puts the substring-matched text in NFC. ILIKE compares code
// points, so a decomposed title would never match a precomposed keyword.
func storedJob(j models.Job) models.Job {
	j.Title = norm.NFC.String(j.Title)
	j.Description = norm.NFC.String(j.Description)
	return j
}

// UpsertJobs inserts or refreshes jobs in a single transaction. Title and
// description are stored in NFC.
func (s *Store) UpsertJobs(ctx context.Context, jobs []models.Job) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	for i := range jobs {
		j := storedJob(jobs[i])
		createdAt := j.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		_, err := tx.InsertBySql(upsertJobSQL,
			j.ID, j.Title, j.Description, nullable(j.Industry), nullable(j.CompanyName),
			nullable(j.Location.City), nullable(j.Location.Region), j.Location.Latitude, j.Location.Longitude,
			j.Salary.Min, j.Salary.Max, nullable(j.Salary.Currency),
			nullable(j.JobType), nullable(j.Experience), j.Deadline, j.Views, nullable(j.Status), createdAt,
		).ExecContext(ctx)
		if err != nil {
			s.logger.Error("failed to upsert job",
				zap.String("job_id", j.ID),
				zap.Error(err),
			)
			return fmt.Errorf("upsert job %s: %w", j.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit jobs: %w", err)
	}

	s.logger.Info("jobs upserted", zap.Int("count", len(jobs)))
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
