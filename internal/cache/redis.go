package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient 是 NewRedisClient 內部需要的方法集合，測試時可替換
type redisClient interface {
	Cache
	Ping(ctx context.Context) *redis.StatusCmd
}

var redisNewClient = func(opt *redis.Options) redisClient {
	return redis.NewClient(opt)
}

// 連線檢查的上限，避免啟動時卡死
const pingTimeout = 5 * time.Second

// NewRedisClient 建立 redis client 並確認連線後以 Cache 介面回傳
// addr: Redis 位址；password: 密碼，可空；db: 資料庫編號
func NewRedisClient(addr string, password string, db int) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
