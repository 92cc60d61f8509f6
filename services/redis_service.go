package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"homes-http-service/config"
)

// 会话return-to槽位的有效期，超时未登录则丢弃
const returnToTTL = 30 * time.Minute

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// NewRedisServiceWithClient 使用已有客户端创建Redis服务（测试用）
func NewRedisServiceWithClient(client *redis.Client) *RedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// StoreReturnTo 保存会话的登录后跳转路径，单槽位，后写覆盖先写
func (s *RedisService) StoreReturnTo(sessionID, path string) error {
	return s.Client.Set(s.Ctx, "return_to:"+sessionID, path, returnToTTL).Err()
}

// ConsumeReturnTo 取出并清除会话的跳转路径，只能消费一次
func (s *RedisService) ConsumeReturnTo(sessionID string) (string, error) {
	key := "return_to:" + sessionID
	path, err := s.Client.Get(s.Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := s.Client.Del(s.Ctx, key).Err(); err != nil {
		return "", err
	}
	return path, nil
}
