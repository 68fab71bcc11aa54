package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedisClient connects to redis when REDIS_CONN_STRING is set; the
// application runs without redis otherwise (no session store, no ORM cache,
// in-memory rate limiting only).
func InitRedisClient() error {
	if RedisConnStr == "" {
		RedisEnabled = false
		SysLog("REDIS_CONN_STRING not set, redis is not enabled")
		return nil
	}
	opt, err := redis.ParseURL(RedisConnStr)
	if err != nil {
		return err
	}
	RDB = redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		return err
	}
	RedisEnabled = true
	SysLog("redis is enabled")
	return nil
}

func ParseRedisOption() *redis.Options {
	opt, err := redis.ParseURL(RedisConnStr)
	if err != nil {
		FatalLog(err)
	}
	return opt
}
