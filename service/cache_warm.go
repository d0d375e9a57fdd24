package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/repository"
)

// CacheWarmJob periodically refreshes the user and listener list
// caches so the dashboard's default pages stay hot
type CacheWarmJob struct {
	repos    *repository.Repositories
	store    *cache.Cache
	logger   *zap.Logger
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewCacheWarmJob(repos *repository.Repositories, store *cache.Cache, logger *zap.Logger, interval time.Duration) *CacheWarmJob {
	return &CacheWarmJob{
		repos:    repos,
		store:    store,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *CacheWarmJob) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.warmUsers(ctx)
				j.warmListeners(ctx)
			}
		}
	}()
}

func (j *CacheWarmJob) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
}

func (j *CacheWarmJob) warmUsers(ctx context.Context) {
	users, total, err := j.repos.Users.List(ctx, 1, 10)
	if err != nil {
		j.logger.Warn("cache warm: fetching users failed", zap.Error(err))
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.Response())
	}

	payload := struct {
		Users []models.UserResponse `json:"users"`
		Total int64                 `json:"total"`
	}{Users: responses, Total: total}

	if err := j.store.Set(ctx, "users:page:1:limit:10", payload, 15*time.Minute); err != nil {
		j.logger.Warn("cache warm: writing user list failed", zap.Error(err))
		return
	}

	for _, user := range users {
		key := fmt.Sprintf(cache.UserDetailPattern, user.ID.Hex())
		if err := j.store.Set(ctx, key, user.Response(), 15*time.Minute); err != nil {
			j.logger.Warn("cache warm: writing user failed",
				zap.String("user", user.ID.Hex()), zap.Error(err))
		}
	}

	j.logger.Debug("cache warm: users refreshed", zap.Int("count", len(users)))
}

func (j *CacheWarmJob) warmListeners(ctx context.Context) {
	listeners, total, err := j.repos.Listeners.List(ctx, models.ListenerFilter{Page: 1, Limit: 10})
	if err != nil {
		j.logger.Warn("cache warm: fetching listeners failed", zap.Error(err))
		return
	}

	payload := struct {
		Listeners []*models.Listener `json:"listeners"`
		Total     int64              `json:"total"`
	}{Listeners: listeners, Total: total}

	if err := j.store.Set(ctx, cache.ListenerListKey, payload, 15*time.Minute); err != nil {
		j.logger.Warn("cache warm: writing listener list failed", zap.Error(err))
		return
	}

	j.logger.Debug("cache warm: listeners refreshed", zap.Int("count", len(listeners)))
}
