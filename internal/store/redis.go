package store

import (
	"context"

	"reach_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 备选后端：每个设备档案一个 hash，字段即记录键。
type RedisStore struct {
	rdb     *redis.Client
	profile string
}

func NewRedisStore(rdb *redis.Client, profile string) *RedisStore {
	return &RedisStore{rdb: rdb, profile: profile}
}

func (s *RedisStore) hashKey() string {
	return "reach:records:" + s.profile
}

func (s *RedisStore) Read(key string) (string, bool) {
	v, err := s.rdb.HGet(context.Background(), s.hashKey(), key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("record store read failed, treating as absent",
				zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return v, true
}

func (s *RedisStore) Write(key, value string) error {
	return s.rdb.HSet(context.Background(), s.hashKey(), key, value).Err()
}

func (s *RedisStore) Remove(key string) {
	if err := s.rdb.HDel(context.Background(), s.hashKey(), key).Err(); err != nil {
		logger.Log.Warn("record store remove failed",
			zap.String("key", key), zap.Error(err))
	}
}
