package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const seenJobsTable = "user_seen_jobs"

func (s *Store) MarkJobAsSeen(ctx context.Context, userID int64, jobID string) error {
	query := `
		INSERT INTO user_seen_jobs (user_id, job_id, seen_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (user_id, job_id) DO NOTHING
	`

	_, err := s.sess.
		InsertBySql(query, userID, jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to mark job as seen",
			zap.Int64("user_id", userID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("mark job as seen: %w", err)
	}

	return nil
}

// GetUnseenJobs returns the subset of jobIDs the user has not been sent yet.
func (s *Store) GetUnseenJobs(ctx context.Context, userID int64, jobIDs []string) ([]string, error) {
	if len(jobIDs) == 0 {
		return []string{}, nil
	}

	query := `
		SELECT unnest(?::text[]) AS id
		EXCEPT
		SELECT job_id FROM user_seen_jobs WHERE user_id = ?
	`

	var unseen []string
	_, err := s.sess.
		SelectBySql(query, pq.Array(jobIDs), userID).
		LoadContext(ctx, &unseen)

	if err != nil {
		s.logger.Error("failed to get unseen jobs",
			zap.Int64("user_id", userID),
			zap.Int("total_jobs", len(jobIDs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get unseen jobs: %w", err)
	}

	s.logger.Debug("unseen jobs",
		zap.Int64("user_id", userID),
		zap.Int("total", len(jobIDs)),
		zap.Int("unseen", len(unseen)),
	)

	return unseen, nil
}

func (s *Store) CleanOldSeenJobs(ctx context.Context, daysOld int) (int64, error) {
	result, err := s.sess.
		DeleteFrom(seenJobsTable).
		Where("seen_at < NOW() - make_interval(days => ?)", daysOld).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to clean old seen jobs",
			zap.Int("days_old", daysOld),
			zap.Error(err),
		)
		return 0, fmt.Errorf("clean old seen jobs: %w", err)
	}

	n, _ := result.RowsAffected()
	return n, nil
}
