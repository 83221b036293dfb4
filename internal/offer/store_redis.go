package offer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "smartfinance/pkg/domain-errors"
)

const offerKeyPrefix = "offer:token:"

// consumeScript flips the consumed flag inside Redis so two concurrent
// redemptions can never both win, even across instances. Returns the stored
// payload on success, -1 when already consumed and nil when unknown.
var consumeScript = redis.NewScript(`
local raw = redis.call("GET", KEYS[1])
if not raw then
	return false
end
local o = cjson.decode(raw)
if o.consumed then
	return -1
end
o.consumed = true
redis.call("SET", KEYS[1], cjson.encode(o), "KEEPTTL")
return raw
`)

// RedisStore is the production offer store. Offers are serialized as JSON
// under their token.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// storedOffer is the Redis payload shape. It carries everything Offer does,
// including fields the HTTP layer never exposes.
type storedOffer struct {
	Token              string  `json:"token"`
	LoanAmount         float64 `json:"loanAmount"`
	InterestRate       float64 `json:"interestRate"`
	TenureMonths       int     `json:"tenureMonths"`
	IsExistingCustomer bool    `json:"isExisting"`
	PAN                string  `json:"pan"`
	Phone              string  `json:"phone"`
	CreatedAtUnix      int64   `json:"createdAt"`
	Consumed           bool    `json:"consumed"`
}

func toStored(o Offer) storedOffer {
	return storedOffer{
		Token:              o.Token,
		LoanAmount:         o.LoanAmount,
		InterestRate:       o.InterestRate,
		TenureMonths:       o.TenureMonths,
		IsExistingCustomer: o.IsExistingCustomer,
		PAN:                o.PAN,
		Phone:              o.Phone,
		CreatedAtUnix:      o.CreatedAt.Unix(),
		Consumed:           o.Consumed,
	}
}

func (s storedOffer) toOffer() Offer {
	return Offer{
		Token:              s.Token,
		LoanAmount:         s.LoanAmount,
		InterestRate:       s.InterestRate,
		TenureMonths:       s.TenureMonths,
		IsExistingCustomer: s.IsExistingCustomer,
		PAN:                s.PAN,
		Phone:              s.Phone,
		CreatedAt:          time.Unix(s.CreatedAtUnix, 0).UTC(),
		Consumed:           s.Consumed,
	}
}

func (s *RedisStore) Create(ctx context.Context, o Offer) error {
	raw, err := json.Marshal(toStored(o))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "offer encode failed")
	}
	if err := s.client.Set(ctx, offerKeyPrefix+o.Token, raw, 0).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstream, "offer store write failed")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (Offer, error) {
	raw, err := s.client.Get(ctx, offerKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Offer{}, errOfferNotFound
	}
	if err != nil {
		return Offer{}, dErrors.Wrap(err, dErrors.CodeUpstream, "offer store read failed")
	}
	return decodeOffer(raw)
}

func (s *RedisStore) Consume(ctx context.Context, token string) (Offer, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{offerKeyPrefix + token}).Result()
	if errors.Is(err, redis.Nil) {
		return Offer{}, errOfferNotFound
	}
	if err != nil {
		return Offer{}, dErrors.Wrap(err, dErrors.CodeUpstream, "offer consume failed")
	}
	switch v := res.(type) {
	case int64:
		return Offer{}, errOfferConsumed
	case string:
		o, err := decodeOffer([]byte(v))
		if err != nil {
			return Offer{}, err
		}
		o.Consumed = true
		return o, nil
	default:
		return Offer{}, dErrors.Newf(dErrors.CodeInternal, "unexpected consume reply %T", res)
	}
}

func decodeOffer(raw []byte) (Offer, error) {
	var st storedOffer
	if err := json.Unmarshal(raw, &st); err != nil {
		return Offer{}, dErrors.Wrap(err, dErrors.CodeInternal, "offer decode failed")
	}
	return st.toOffer(), nil
}
