package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/usecase"
)

const keyPrefix = "oai:token:"

// Redis stores tokens as json with a server side TTL, so Expire has nothing to do.
type Redis struct {
	rdb *redis.Client
	ids *idGenerator
	now func() time.Time
}

var _ usecase.TokenStore = (*Redis)(nil)

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, ids: newIDGenerator(), now: time.Now}
}

// WithClock replaces the time source used for expiry checks.
func (r *Redis) WithClock(now func() time.Time) *Redis {
	r.now = now
	return r
}

func (r *Redis) Create(ctx context.Context, token domain.ResumptionToken) (string, error) {
	ctx, span := tracer.Start(ctx, "TokenStore.Redis.Create")
	defer span.End()

	token.ID = r.ids.next()
	value, err := json.Marshal(token)
	if err != nil {
		return "", err
	}

	err = r.rdb.Set(ctx, keyPrefix+token.ID, value, ttl(token, r.now())).Err()
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return token.ID, nil
}

func (r *Redis) Resolve(ctx context.Context, id string) (domain.ResumptionToken, error) {
	ctx, span := tracer.Start(ctx, "TokenStore.Redis.Resolve")
	defer span.End()

	value, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ResumptionToken{}, domain.ErrTokenNotFound
		}
		span.RecordError(err)
		return domain.ResumptionToken{}, err
	}
	return decode(value, r.now())
}

func (r *Redis) Expire(ctx context.Context, now time.Time) error {
	return nil
}
