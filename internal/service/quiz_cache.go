package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"quiz-gen/internal/cache"
	"quiz-gen/internal/domain"
	"quiz-gen/internal/dto"
	"quiz-gen/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// sharedLoadTimeout bounds a load shared by concurrent misses. The load does not inherit
// the cancellation of whichever caller started it.
const sharedLoadTimeout = 30 * time.Second

// quizCache is a read-through cache for quiz responses. Cache failures are logged and
// the loader is used instead; concurrent misses for one key share a single load.
//
// A load that overlaps an eviction does not write its result back: epoch is bumped on
// every eviction and the write is skipped when it moved while the load ran.
type quizCache struct {
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group

	mu    sync.Mutex
	epoch uint64
}

func newQuizCache(c domain.Cache, ttl time.Duration) *quizCache {
	return &quizCache{cache: c, ttl: ttl}
}

func (c *quizCache) getOrLoad(ctx context.Context, userID, quizID string, load func(ctx context.Context) (*dto.QuizResponse, error)) (*dto.QuizResponse, error) {
	if c == nil || c.cache == nil {
		return load(ctx)
	}

	key := cache.QuizKey(userID, quizID)
	log := logger.Get()

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached dto.QuizResponse
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			log.Debug("Quiz cache hit", zap.String("key", key))
			return &cached, nil
		} else {
			log.Warn("Discarding undecodable cached quiz", zap.String("key", key), zap.Error(jsonErr))
		}
	case errors.Is(err, domain.ErrCacheMiss):
		log.Debug("Quiz cache miss", zap.String("key", key))
	default:
		log.Warn("Quiz cache read failed", zap.String("key", key), zap.Error(err))
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		c.mu.Lock()
		startEpoch := c.epoch
		c.mu.Unlock()

		quiz, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.store(loadCtx, key, quiz, startEpoch)
		return quiz, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dto.QuizResponse), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// store writes quiz under key unless an eviction happened since startEpoch.
func (c *quizCache) store(ctx context.Context, key string, quiz *dto.QuizResponse, startEpoch uint64) {
	log := logger.Get()
	data, err := json.Marshal(quiz)
	if err != nil {
		log.Warn("Failed to encode quiz for cache", zap.String("key", key), zap.Error(err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != startEpoch {
		log.Debug("Skipping cache write after concurrent eviction", zap.String("key", key))
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		log.Warn("Quiz cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *quizCache) evict(ctx context.Context, userID, quizID string) {
	if c == nil || c.cache == nil {
		return
	}
	key := cache.QuizKey(userID, quizID)

	// Holding mu orders this against an in-flight store: either the store already wrote
	// and the Delete below removes it, or it sees the new epoch and skips.
	c.mu.Lock()
	c.epoch++
	c.mu.Unlock()
	c.group.Forget(key)

	if err := c.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Quiz cache eviction failed", zap.String("key", key), zap.Error(err))
	}
}
