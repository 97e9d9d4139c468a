package tokenstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/usecase"
)

// Memory keeps tokens in process. Tokens are lost on restart.
type Memory struct {
	cache *cache.Cache
	ids   *idGenerator
	now   func() time.Time
}

var _ usecase.TokenStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
		ids:   newIDGenerator(),
		now:   time.Now,
	}
}

// WithClock replaces the time source used for expiry checks.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Create(ctx context.Context, token domain.ResumptionToken) (string, error) {
	token.ID = m.ids.next()
	m.cache.Set(token.ID, token, ttl(token, m.now()))
	return token.ID, nil
}

func (m *Memory) Resolve(ctx context.Context, id string) (domain.ResumptionToken, error) {
	x, found := m.cache.Get(id)
	if !found {
		return domain.ResumptionToken{}, domain.ErrTokenNotFound
	}
	token := x.(domain.ResumptionToken)
	if token.Expired(m.now()) {
		m.cache.Delete(id)
		return domain.ResumptionToken{}, domain.ErrTokenExpired
	}
	return token, nil
}

func (m *Memory) Expire(ctx context.Context, now time.Time) error {
	m.cache.DeleteExpired()
	for id, item := range m.cache.Items() {
		if token, ok := item.Object.(domain.ResumptionToken); ok && token.Expired(now) {
			m.cache.Delete(id)
		}
	}
	return nil
}

// Len reports the number of stored tokens, expired ones included.
func (m *Memory) Len() int {
	return m.cache.ItemCount()
}
