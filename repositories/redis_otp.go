// repositories/redis_otp.go
package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/serenemind/portal_backend/models"
)

// RedisOTPRepository implements OTPRepository on Redis. Keys carry a TTL one
// hour past the code's expiry: the service still observes and reports the
// expired state itself, Redis just garbage-collects stale records afterwards.
type RedisOTPRepository struct {
	client *redis.Client
}

func NewRedisOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

func otpKey(kind models.AccountKind, email string) string {
	return "pending_otp:" + string(kind) + ":" + email
}

func (r *RedisOTPRepository) Get(ctx context.Context, kind models.AccountKind, email string) (*models.PendingOTP, error) {
	data, err := r.client.Get(ctx, otpKey(kind, email)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var otp models.PendingOTP
	if err := json.Unmarshal([]byte(data), &otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *RedisOTPRepository) Put(ctx context.Context, otp *models.PendingOTP) error {
	data, err := json.Marshal(otp)
	if err != nil {
		return err
	}

	ttl := time.Until(otp.ExpiresAt) + time.Hour
	return r.client.Set(ctx, otpKey(otp.Kind, otp.Email), data, ttl).Err()
}

func (r *RedisOTPRepository) Delete(ctx context.Context, kind models.AccountKind, email string) error {
	return r.client.Del(ctx, otpKey(kind, email)).Err()
}
