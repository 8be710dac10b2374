package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/andresuchdata/reslink/internal/config"
	"github.com/andresuchdata/reslink/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const courseKeyPrefix = "reslink:course:"

// CourseFinder is the lookup the cache sits in front of.
type CourseFinder interface {
	FindCourseID(ctx context.Context, courseCode string, scope domain.CourseScope) (int64, bool, error)
}

// CourseCache is a read-through Redis cache of course ids. Only hits are
// stored, so a course added mid-run is still picked up.
type CourseCache struct {
	client *redis.Client
	ttl    time.Duration
	next   CourseFinder
}

// NewCourseCache connects to Redis and wraps next.
func NewCourseCache(ctx context.Context, cfg config.CacheConfig, next CourseFinder) (*CourseCache, error) {
	client, ttl, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewCourseCacheWithClient(client, ttl, next), nil
}

// NewCourseCacheWithClient wraps next with an existing client. A non-positive
// ttl means the default.
func NewCourseCacheWithClient(client *redis.Client, ttl time.Duration, next CourseFinder) *CourseCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CourseCache{client: client, ttl: ttl, next: next}
}

// FindCourseID serves hits from Redis and falls through to next on a miss or
// a Redis failure.
func (c *CourseCache) FindCourseID(ctx context.Context, courseCode string, scope domain.CourseScope) (int64, bool, error) {
	key := courseKey(courseCode, scope)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if id, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
			return id, true, nil
		}
		log.Warn().Str("key", key).Str("value", cached).Msg("Ignoring malformed cached course id")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("Course cache read failed")
	}

	id, found, err := c.next.FindCourseID(ctx, courseCode, scope)
	if err != nil || !found {
		return id, found, err
	}

	if err := c.client.Set(ctx, key, strconv.FormatInt(id, 10), c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Course cache write failed")
	}
	return id, true, nil
}

// Flush drops every cached course id and returns how many keys went.
func (c *CourseCache) Flush(ctx context.Context) (int, error) {
	n, err := deleteKeysWithPrefix(ctx, c.client, courseKeyPrefix, 500)
	if err != nil {
		return n, fmt.Errorf("failed to flush course cache: %w", err)
	}
	return n, nil
}

// Close closes the Redis client.
func (c *CourseCache) Close() error {
	return c.client.Close()
}

func courseKey(courseCode string, scope domain.CourseScope) string {
	return fmt.Sprintf("%s%s:%d:%s:%s", courseKeyPrefix, scope.Department, scope.Level, scope.Semester, courseCode)
}
