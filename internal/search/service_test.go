package search_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"jobsearch/internal/models"
	"jobsearch/internal/search"
	"jobsearch/internal/search/city"
	"jobsearch/internal/search/predicate"
	"jobsearch/internal/search/synonym"
	"jobsearch/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T, store search.Store, opts ...search.Option) *search.Service {
	t.Helper()
	opts = append([]search.Option{search.WithClock(func() time.Time { return now })}, opts...)
	svc, err := search.NewService(store, synonym.MustNewTable(synonym.DefaultGroups), city.Default(), opts...)
	require.NoError(t, err)
	return svc
}

func job(id, title, cityName, jobType string, createdOffset time.Duration) models.Job {
	return models.Job{
		ID:        id,
		Title:     title,
		Industry:  "Software",
		Location:  models.Location{City: cityName},
		JobType:   jobType,
		Deadline:  now.Add(30 * 24 * time.Hour),
		CreatedAt: now.Add(-createdOffset),
	}
}

func seededStore() *memory.Store {
	store := memory.New(nil)
	for i := 0; i < 12; i++ {
		store.Add(job(fmt.Sprintf("hcm-%02d", i), fmt.Sprintf("Lập trình viên CNTT %d", i), "Hồ Chí Minh", "remote", time.Duration(i)*time.Hour))
	}

	expired := job("expired", "IT Support", "Hồ Chí Minh", "remote", 0)
	expired.Deadline = now.Add(-time.Hour)

	store.Add(
		expired,
		job("hanoi", "IT Helpdesk", "Hà Nội", "remote", 0),
		job("onsite", "Tech Lead", "Hồ Chí Minh", "full-time", 0),
		job("sales", "Nhân viên kinh doanh", "Hồ Chí Minh", "remote", 0),
	)
	return store
}

func TestNewService_Validation(t *testing.T) {
	table := synonym.MustNewTable(synonym.DefaultGroups)

	_, err := search.NewService(nil, table, city.Default())
	assert.Equal(t, search.ErrStoreRequired, err)

	_, err = search.NewService(memory.New(nil), nil, city.Default())
	assert.Equal(t, search.ErrSynonymsRequired, err)

	_, err = search.NewService(memory.New(nil), table, nil)
	assert.Equal(t, search.ErrGazetteerRequired, err)
}

func TestSearch_EndToEnd(t *testing.T) {
	svc := newService(t, seededStore())

	page, err := svc.Search(context.Background(), search.Params{
		Keyword: "it",
		City:    "hồ chí minh",
		JobType: "remote",
		Page:    "1",
		Limit:   "5",
	})
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 5, page.Limit)

	// newest first by default
	assert.Equal(t, "hcm-00", page.Items[0].ID)
	assert.Equal(t, "hcm-04", page.Items[4].ID)
	for _, item := range page.Items {
		assert.Equal(t, "Hồ Chí Minh", item.Location.City)
	}
}

func TestSearch_LastAndOutOfRangePages(t *testing.T) {
	svc := newService(t, seededStore())
	params := search.Params{Keyword: "it", City: "hồ chí minh", JobType: "remote", Limit: "5"}

	params.Page = "3"
	page, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	params.Page = "7"
	page, err = svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 7, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
}

func TestSearch_HugePageIsEmptyNotFirst(t *testing.T) {
	svc := newService(t, seededStore())

	for _, params := range []search.Params{
		{Page: "4611686018427387904", Limit: "4"},
		{Page: "9223372036854775807", Limit: "9223372036854775807"},
	} {
		page, err := svc.Search(context.Background(), params)
		require.NoError(t, err, params.Page)
		assert.Empty(t, page.Items, params.Page)
		assert.Positive(t, page.TotalPages, params.Page)
	}
}

func TestSearch_InvalidCityIsDropped(t *testing.T) {
	svc := newService(t, seededStore())

	page, err := svc.Search(context.Background(), search.Params{City: "nowhereville"})
	require.NoError(t, err)

	// every open job, none filtered by city
	assert.Equal(t, 15, page.TotalCount)
}

func TestSearch_EmptyParamsExcludeExpired(t *testing.T) {
	svc := newService(t, seededStore())

	page, err := svc.Search(context.Background(), search.Params{Limit: "100"})
	require.NoError(t, err)

	for _, item := range page.Items {
		assert.NotEqual(t, "expired", item.ID)
	}
	assert.Equal(t, 15, page.TotalCount)
}

func TestSearch_SortAscending(t *testing.T) {
	svc := newService(t, seededStore())

	page, err := svc.Search(context.Background(), search.Params{City: "Hồ Chí Minh", JobType: "remote", Keyword: "cntt", Sort: "createdAt", Limit: "3"})
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, "hcm-11", page.Items[0].ID)
}

func TestNormalize(t *testing.T) {
	svc := newService(t, memory.New(nil))

	f := svc.Normalize(search.Params{
		Keyword:    "  IT ",
		City:       " hà nội ",
		Experience: "Dưới 1 năm, Từ 1-2 năm",
		MinSalary:  "abc",
		MaxSalary:  "30000000",
		Sort:       "-views",
		Page:       "0",
		Limit:      "",
	})

	assert.Equal(t, "IT", f.Keyword)
	assert.Equal(t, "Hà Nội", f.City)
	assert.Equal(t, []string{"Dưới 1 năm", "Từ 1-2 năm"}, f.Experience)
	assert.True(t, f.ExperienceList)
	assert.Nil(t, f.SalaryMin)
	require.NotNil(t, f.SalaryMax)
	assert.Equal(t, 30_000_000.0, *f.SalaryMax)
	assert.Equal(t, predicate.Sort{Field: predicate.FieldViews, Desc: true}, f.Sort)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)
}

type failingStore struct {
	findErr  error
	countErr error
	finds    int
	counts   int
}

func (s *failingStore) FindMatching(context.Context, predicate.Expr, predicate.Sort, int, int) ([]models.Job, error) {
	s.finds++
	return nil, s.findErr
}

func (s *failingStore) CountMatching(context.Context, predicate.Expr) (int, error) {
	s.counts++
	return 0, s.countErr
}

func TestSearch_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")

	store := &failingStore{findErr: boom}
	_, err := newService(t, store).Search(context.Background(), search.Params{})
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrStore)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.finds, "no retries")
	assert.Equal(t, 0, store.counts)

	store = &failingStore{countErr: boom}
	page, err := newService(t, store).Search(context.Background(), search.Params{})
	assert.Nil(t, page, "no partial page")
	assert.ErrorIs(t, err, search.ErrStore)
}

func TestSearch_ContextDeadline(t *testing.T) {
	svc := newService(t, seededStore(), search.WithTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, search.Params{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, search.ErrStore)
}

type mapCache struct {
	mu    sync.Mutex
	pages map[string]*search.Page
	err   error
}

func (c *mapCache) GetPage(_ context.Context, key string) (*search.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.pages[key], nil
}

func (c *mapCache) SetPage(_ context.Context, key string, page *search.Page) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.pages[key] = page
	return nil
}

func TestSearch_PageCache(t *testing.T) {
	cache := &mapCache{pages: map[string]*search.Page{}}
	store := seededStore()
	svc := newService(t, store, search.WithPageCache(cache))
	params := search.Params{Keyword: "it", City: "Hồ Chí Minh", JobType: "remote"}

	first, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, cache.pages, 1)

	store.Add(job("late", "CNTT mới", "Hồ Chí Minh", "remote", 0))

	second, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, first, second, "served from cache")
}

func TestSearch_PageCacheFailureIsIgnored(t *testing.T) {
	cache := &mapCache{pages: map[string]*search.Page{}, err: errors.New("redis down")}
	svc := newService(t, seededStore(), search.WithPageCache(cache))

	page, err := svc.Search(context.Background(), search.Params{Keyword: "it"})
	require.NoError(t, err)
	assert.NotZero(t, page.TotalCount)
}

func TestCacheKey(t *testing.T) {
	svc := newService(t, memory.New(nil))

	a := svc.Normalize(search.Params{Keyword: "IT", City: "hà nội"})
	b := svc.Normalize(search.Params{Keyword: " it ", City: "HÀ NỘI"})
	c := svc.Normalize(search.Params{Keyword: "it", City: "hà nội", Page: "2"})

	assert.Equal(t, search.CacheKey(a, 0, 10), search.CacheKey(b, 0, 10))
	assert.NotEqual(t, search.CacheKey(a, 0, 10), search.CacheKey(c, 10, 10))
	assert.Len(t, search.CacheKey(a, 0, 10), 16)
}

func TestSearch_Concurrent(t *testing.T) {
	svc := newService(t, seededStore())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := svc.Search(context.Background(), search.Params{Keyword: "it", JobType: "remote", City: "hồ chí minh"})
			assert.NoError(t, err)
			assert.Equal(t, 12, page.TotalCount)
		}()
	}
	wg.Wait()
}
