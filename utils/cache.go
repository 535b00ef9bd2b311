package utils

import (
	"context"
	"log"
	"time"

	"fieldbook/config"

	"github.com/go-redis/redis/v8"
)

// BookingCacheClient is the Redis client holding booking sessions.
var BookingCacheClient *redis.Client

// InitRedis initializes the Redis client for booking sessions.
func InitRedis() {
	BookingCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := BookingCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (sessions): %v", err)
	}
}

// GetBookingCacheClient returns the session cache client.
func GetBookingCacheClient() *redis.Client {
	if BookingCacheClient == nil {
		InitRedis()
	}
	return BookingCacheClient
}
