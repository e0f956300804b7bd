package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
)

// StatsJob refreshes the business gauges (posts, users, follows) from the
// database. It implements cron.Job.
type StatsJob struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewStatsJob creates a new StatsJob instance
func NewStatsJob(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatsJob {
	return &StatsJob{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		metrics:    m,
		logger:     logger,
	}
}

// Run executes one refresh of the business gauges. Each count is independent
// so one failing query does not block the others.
func (j *StatsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	posts, err := j.postRepo.CountAll(ctx)
	if err != nil {
		j.logger.Error("Failed to count posts", zap.Error(err))
	} else {
		j.metrics.SetPostsTotal(posts)
	}

	users, err := j.userRepo.Count(ctx)
	if err != nil {
		j.logger.Error("Failed to count users", zap.Error(err))
	} else {
		j.metrics.SetUsersTotal(users)
	}

	follows, err := j.followRepo.Count(ctx)
	if err != nil {
		j.logger.Error("Failed to count follows", zap.Error(err))
	} else {
		j.metrics.SetFollowsTotal(follows)
	}

	j.logger.Debug("Business gauges refreshed",
		zap.Int64("posts", posts),
		zap.Int64("users", users),
		zap.Int64("follows", follows),
	)
}

// StartScheduler runs the stats job once immediately, then on the given cron
// schedule. The returned cron is already started; stop it on shutdown.
func StartScheduler(j *StatsJob, schedule string, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(schedule, j); err != nil {
		return nil, err
	}

	go j.Run()
	c.Start()

	logger.Info("Stats scheduler started", zap.String("schedule", schedule))
	return c, nil
}
