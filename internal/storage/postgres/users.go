package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobsearch/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

const usersTable = "users"

var ErrUserNotFound = errors.New("user not found")

var userColumns = []string{
	"id", "username", "first_name", "last_name",
	"created_at", "last_check", "check_enabled", "notify_interval",
}

var registerUserSQL = `
	INSERT INTO ` + usersTable + ` (id, username, first_name, last_name, created_at, check_enabled, notify_interval)
	VALUES (?, ?, ?, ?, NOW(), ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		username = EXCLUDED.username,
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name
	RETURNING ` + strings.Join(userColumns, ", ")

// RegisterUser inserts the user or refreshes the Telegram profile of an
// existing one. Notification settings of an existing user are kept.
func (s *Store) RegisterUser(ctx context.Context, profile *models.User) (*models.User, error) {
	var user models.User

	err := s.sess.
		SelectBySql(registerUserSQL,
			profile.ID, profile.Username, profile.FirstName, profile.LastName,
			profile.CheckEnabled, profile.NotifyInterval,
		).
		LoadOneContext(ctx, &user)

	if err != nil {
		s.logger.Error("failed to register user",
			zap.Int64("user_id", profile.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Debug("user registered",
		zap.Int64("user_id", user.ID),
		zap.Stringp("username", user.Username),
	)

	return &user, nil
}

// GetUser returns nil, nil when the user has never started the bot.
func (s *Store) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select(userColumns...).
		From(usersTable).
		Where(dbr.Eq("id", userID)).
		LoadOneContext(ctx, &user)

	if errors.Is(err, dbr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	return &user, nil
}

// NotifySettings is a partial update; nil fields are left unchanged.
type NotifySettings struct {
	Enabled         *bool
	IntervalMinutes *int
}

func (s *Store) UpdateNotifySettings(ctx context.Context, userID int64, settings NotifySettings) error {
	stmt := s.sess.Update(usersTable).Where(dbr.Eq("id", userID))

	fields := []zap.Field{zap.Int64("user_id", userID)}
	if settings.Enabled != nil {
		stmt = stmt.Set("check_enabled", *settings.Enabled)
		fields = append(fields, zap.Bool("enabled", *settings.Enabled))
	}
	if settings.IntervalMinutes != nil {
		stmt = stmt.Set("notify_interval", *settings.IntervalMinutes)
		fields = append(fields, zap.Int("interval", *settings.IntervalMinutes))
	}
	if len(fields) == 1 {
		return nil
	}

	res, err := stmt.ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to update notify settings", append(fields, zap.Error(err))...)
		return fmt.Errorf("update notify settings: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	s.logger.Info("notify settings updated", fields...)
	return nil
}

func (s *Store) UpdateLastCheck(ctx context.Context, userID int64) error {
	_, err := s.sess.
		Update(usersTable).
		Set("last_check", dbr.Expr("NOW()")).
		Where(dbr.Eq("id", userID)).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("update last check: %w", err)
	}

	return nil
}

// GetUsersToCheck returns users with notifications on whose interval has
// elapsed since the last check.
func (s *Store) GetUsersToCheck(ctx context.Context) ([]models.User, error) {
	var users []models.User

	_, err := s.sess.
		Select(userColumns...).
		From(usersTable).
		Where(dbr.And(
			dbr.Eq("check_enabled", true),
			dbr.Or(
				dbr.Eq("last_check", nil),
				dbr.Expr("last_check <= NOW() - make_interval(mins => notify_interval)"),
			),
		)).
		OrderBy("id").
		LoadContext(ctx, &users)

	if err != nil {
		s.logger.Error("failed to get users to check", zap.Error(err))
		return nil, fmt.Errorf("get users to check: %w", err)
	}

	s.logger.Debug("users to check", zap.Int("count", len(users)))

	return users, nil
}

// UserStats summarizes a user's saved search and delivery history.
type UserStats struct {
	FilterCount int `db:"filter_count"`
	SeenCount   int `db:"seen_count"`
}

var userStatsSQL = `
	SELECT
		(SELECT COUNT(*) FROM ` + filtersTable + ` WHERE user_id = ?) AS filter_count,
		(SELECT COUNT(*) FROM ` + seenJobsTable + ` WHERE user_id = ?) AS seen_count`

func (s *Store) GetUserStats(ctx context.Context, userID int64) (*UserStats, error) {
	var stats UserStats

	if err := s.sess.SelectBySql(userStatsSQL, userID, userID).LoadOneContext(ctx, &stats); err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	return &stats, nil
}
