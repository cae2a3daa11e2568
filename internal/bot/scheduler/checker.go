// Package scheduler periodically re-runs saved searches and notifies users
// about jobs they have not been sent yet.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"jobsearch/internal/bot/utils"
	"jobsearch/internal/models"
	"jobsearch/internal/search"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	checkTimeout = 5 * time.Minute
	newestFirst  = "-createdAt"
)

// Store is the persistence the checker needs.
type Store interface {
	GetUsersToCheck(ctx context.Context) ([]models.User, error)
	GetFiltersMap(ctx context.Context, userID int64) (map[string]string, error)
	GetUnseenJobs(ctx context.Context, userID int64, jobIDs []string) ([]string, error)
	MarkJobAsSeen(ctx context.Context, userID int64, jobID string) error
	UpdateLastCheck(ctx context.Context, userID int64) error
	CleanOldSeenJobs(ctx context.Context, daysOld int) (int64, error)
}

type Searcher interface {
	Search(ctx context.Context, p search.Params) (*search.Page, error)
}

type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type Options struct {
	Interval time.Duration
	MaxJobs  int
	Workers  int
	// SeenRetentionDays prunes delivery history daily; 0 keeps it forever.
	SeenRetentionDays int
}

// JobChecker runs saved searches on a cron schedule over a bounded pool.
type JobChecker struct {
	store    Store
	searcher Searcher
	sender   Sender
	opts     Options
	cron     *cron.Cron
	pool     *ants.Pool
	logger   *zap.Logger
}

func New(store Store, searcher Searcher, sender Sender, opts Options, logger *zap.Logger) (*JobChecker, error) {
	logger = logger.Named("checker")

	pool, err := ants.NewPool(opts.Workers, ants.WithPanicHandler(func(p interface{}) {
		logger.Error("notify worker panicked", zap.Any("panic", p), zap.Stack("stack"))
	}))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	cronLog := cronLogger{logger.Sugar()}

	return &JobChecker{
		store:    store,
		searcher: searcher,
		sender:   sender,
		opts:     opts,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.SkipIfStillRunning(cronLog)),
		),
		pool:   pool,
		logger: logger,
	}, nil
}

// Start schedules the check, runs one immediately and blocks until ctx is
// done and every run in flight, the initial one included, has returned.
func (jc *JobChecker) Start(ctx context.Context) error {
	schedule := "@every " + jc.opts.Interval.String()
	if _, err := jc.cron.AddFunc(schedule, func() { jc.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule job check: %w", err)
	}
	if jc.opts.SeenRetentionDays > 0 {
		if _, err := jc.cron.AddFunc("@daily", func() { jc.Prune(ctx) }); err != nil {
			return fmt.Errorf("schedule seen jobs cleanup: %w", err)
		}
	}

	jc.cron.Start()
	jc.logger.Info("job checker started", zap.Duration("interval", jc.opts.Interval))

	var initial sync.WaitGroup
	initial.Add(1)
	go func() {
		defer initial.Done()
		jc.RunOnce(ctx)
	}()

	<-ctx.Done()

	<-jc.cron.Stop().Done()
	initial.Wait()
	jc.pool.Release()
	jc.logger.Info("job checker stopped")

	return nil
}

// Prune drops delivery history older than the retention period. A pruned
// job that is still open may be sent again.
func (jc *JobChecker) Prune(ctx context.Context) {
	if jc.opts.SeenRetentionDays <= 0 {
		return
	}

	n, err := jc.store.CleanOldSeenJobs(ctx, jc.opts.SeenRetentionDays)
	if err != nil {
		jc.logger.Error("failed to prune seen jobs", zap.Error(err))
		return
	}

	jc.logger.Info("seen jobs pruned",
		zap.Int("retention_days", jc.opts.SeenRetentionDays),
		zap.Int64("count", n),
	)
}

// RunOnce checks every user that is due and waits for all of them.
func (jc *JobChecker) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	users, err := jc.store.GetUsersToCheck(ctx)
	if err != nil {
		jc.logger.Error("failed to get users to check", zap.Error(err))
		return
	}

	if len(users) == 0 {
		jc.logger.Debug("no users to check")
		return
	}

	jc.logger.Info("checking jobs for users", zap.Int("count", len(users)))

	var wg sync.WaitGroup
	for _, user := range users {
		user := user
		wg.Add(1)

		err := jc.pool.Submit(func() {
			defer wg.Done()
			jc.checkUser(ctx, &user)
		})
		if err != nil {
			wg.Done()
			jc.logger.Error("failed to submit user check",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}
	wg.Wait()

	jc.logger.Info("finished job check")
}

func (jc *JobChecker) checkUser(ctx context.Context, user *models.User) {
	sent, err := jc.notifyUser(ctx, user.ID)
	if err != nil {
		jc.logger.Error("failed to check jobs for user",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return
	}

	if err := jc.store.UpdateLastCheck(ctx, user.ID); err != nil {
		jc.logger.Error("failed to update last check",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	if sent > 0 {
		jc.logger.Info("sent new jobs to user",
			zap.Int64("user_id", user.ID),
			zap.Int("count", sent),
		)
	}
}

// notifyUser runs the user's saved search and sends the unseen results.
func (jc *JobChecker) notifyUser(ctx context.Context, userID int64) (int, error) {
	filters, err := jc.store.GetFiltersMap(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get filters: %w", err)
	}

	if len(filters) == 0 {
		jc.logger.Debug("user has no filters", zap.Int64("user_id", userID))
		return 0, nil
	}

	params := search.ParamsFromFilters(filters)
	params.Sort = newestFirst
	params.Page = "1"
	params.Limit = strconv.Itoa(jc.opts.MaxJobs)

	page, err := jc.searcher.Search(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("search jobs: %w", err)
	}

	if len(page.Items) == 0 {
		return 0, nil
	}

	ids := make([]string, len(page.Items))
	for i, job := range page.Items {
		ids[i] = job.ID
	}

	unseenIDs, err := jc.store.GetUnseenJobs(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("get unseen jobs: %w", err)
	}

	unseen := make(map[string]bool, len(unseenIDs))
	for _, id := range unseenIDs {
		unseen[id] = true
	}

	var fresh []models.Job
	for _, job := range page.Items {
		if unseen[job.ID] {
			fresh = append(fresh, job)
		}
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	return jc.sendJobs(ctx, userID, fresh)
}

// sendJobs marks a job seen only after it was delivered.
func (jc *JobChecker) sendJobs(ctx context.Context, userID int64, jobs []models.Job) (int, error) {
	recipient := &tele.User{ID: userID}

	summary := fmt.Sprintf("🔔 *Có việc làm mới\\!*\n\nSố việc mới: %d", len(jobs))
	if _, err := jc.sender.Send(recipient, summary, tele.ModeMarkdownV2); err != nil {
		return 0, fmt.Errorf("send summary: %w", err)
	}

	sent := 0
	for i := range jobs {
		job := &jobs[i]

		if _, err := jc.sender.Send(recipient, utils.FormatJob(job), tele.ModeMarkdownV2); err != nil {
			jc.logger.Error("failed to send job notification",
				zap.Int64("user_id", userID),
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			continue
		}

		if err := jc.store.MarkJobAsSeen(ctx, userID, job.ID); err != nil {
			jc.logger.Error("failed to mark job as seen",
				zap.Int64("user_id", userID),
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
		}
		sent++
	}

	return sent, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
