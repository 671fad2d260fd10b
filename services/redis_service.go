package services

import (
	"context"
	"encoding/json"
	"estate-management-service/config"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 各仪表盘视图的缓存key，业务操作在变更后失效对应视图
const (
	ViewProperties  = "view:properties"
	ViewTenants     = "view:tenants"
	ViewFinance     = "view:finance"
	ViewMaintenance = "view:maintenance"
	ViewVendors     = "view:vendors"
	ViewTasks       = "view:tasks"
	ViewMessages    = "view:messages"
)

// InterfaceRedisService 定义Redis服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	InvalidateView(orgID uint, views ...string)
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
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

// InvalidateView 使指定组织的仪表盘视图缓存失效，失败只记录不传播
func (s *RedisService) InvalidateView(orgID uint, views ...string) {
	for _, view := range views {
		key := fmt.Sprintf("%s:%d", view, orgID)
		if err := s.Client.Del(s.Ctx, key).Err(); err != nil && err != redis.Nil {
			config.Warning("视图缓存失效失败 %s: %v", key, err)
		}
	}
}

// noopRedisService 在Redis不可用时使用的空实现
type noopRedisService struct{}

// NewNoopRedisService 创建不做任何事情的Redis服务，用于测试或无Redis部署
func NewNoopRedisService() InterfaceRedisService {
	return &noopRedisService{}
}

func (s *noopRedisService) Set(key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (s *noopRedisService) Get(key string, dest interface{}) error {
	return redis.Nil
}

func (s *noopRedisService) Delete(key string) error { return nil }

func (s *noopRedisService) InvalidateView(orgID uint, views ...string) {}
