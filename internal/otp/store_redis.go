package otp

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "smartfinance/pkg/domain-errors"
)

const otpKeyPrefix = "otp:id:"

// verifyAndConsumeScript compares and deletes in a single Redis round trip so
// two concurrent verifications can never both win, even across instances.
var verifyAndConsumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// RedisStore is the production OTP store. Expiry rides on the Redis key TTL,
// so expired codes disappear without any sweeper.
type RedisStore struct {
	client *redis.Client
	clock  func() time.Time
}

type RedisStoreOption func(*RedisStore)

// WithClock overrides the TTL reference clock for tests.
func WithClock(clock func() time.Time) RedisStoreOption {
	return func(s *RedisStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) Put(ctx context.Context, identifier string, rec Record) error {
	ttl := rec.Expiry.Sub(s.clock())
	if ttl <= 0 {
		return dErrors.New(dErrors.CodeInternal, "otp record already expired")
	}
	if err := s.client.Set(ctx, otpKeyPrefix+identifier, rec.Code, ttl).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstream, "otp store write failed")
	}
	return nil
}

func (s *RedisStore) VerifyAndConsume(ctx context.Context, identifier, code string, _ time.Time) (bool, error) {
	res, err := verifyAndConsumeScript.Run(ctx, s.client, []string{otpKeyPrefix + identifier}, code).Int()
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUpstream, "otp store read failed")
	}
	return res == 1, nil
}
