package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginAttemptRepository counts login attempts per account in Redis using a
// fixed INCR+EXPIRE window.
type LoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository wraps a Redis client.
func NewLoginAttemptRepository(client *redis.Client) *LoginAttemptRepository {
	return &LoginAttemptRepository{client: client}
}

// Record increments the attempt counter for the email and returns the count
// within the current window. The expiry is set when the window opens.
func (r *LoginAttemptRepository) Record(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := attemptKey(email)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr login attempts: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("expire login attempts: %w", err)
		}
	}
	return count, nil
}

// Reset clears the attempt counter after a successful login.
func (r *LoginAttemptRepository) Reset(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, attemptKey(email)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

func attemptKey(email string) string {
	return "login_attempts:" + strings.ToLower(email)
}
