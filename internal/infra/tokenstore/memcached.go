package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/usecase"
)

// Memcached stores tokens as json items that expire on the server.
type Memcached struct {
	mc  *memcache.Client
	ids *idGenerator
	now func() time.Time
}

var _ usecase.TokenStore = (*Memcached)(nil)

func NewMemcached(mc *memcache.Client) *Memcached {
	return &Memcached{mc: mc, ids: newIDGenerator(), now: time.Now}
}

func (m *Memcached) Create(ctx context.Context, token domain.ResumptionToken) (string, error) {
	_, span := tracer.Start(ctx, "TokenStore.Memcached.Create")
	defer span.End()

	token.ID = m.ids.next()
	value, err := json.Marshal(token)
	if err != nil {
		return "", err
	}

	err = m.mc.Set(&memcache.Item{
		Key:        keyPrefix + token.ID,
		Value:      value,
		Expiration: expiration(token, m.now()),
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return token.ID, nil
}

func (m *Memcached) Resolve(ctx context.Context, id string) (domain.ResumptionToken, error) {
	_, span := tracer.Start(ctx, "TokenStore.Memcached.Resolve")
	defer span.End()

	item, err := m.mc.Get(keyPrefix + id)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) || errors.Is(err, memcache.ErrMalformedKey) {
			return domain.ResumptionToken{}, domain.ErrTokenNotFound
		}
		span.RecordError(err)
		return domain.ResumptionToken{}, err
	}
	return decode(item.Value, m.now())
}

// relativeLimit is the longest expiration memcached reads as relative
// seconds; larger values are taken as a unix timestamp.
const relativeLimit = 30 * 24 * time.Hour

func expiration(token domain.ResumptionToken, now time.Time) int32 {
	d := ttl(token, now)
	if d > relativeLimit {
		return int32(now.Add(d).Unix())
	}
	return int32(d / time.Second)
}

func (m *Memcached) Expire(ctx context.Context, now time.Time) error {
	return nil
}
