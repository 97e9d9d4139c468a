package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/totegamma/oairepo/internal/domain"
)

type mockItemRepo struct {
	items []domain.Item
	err   error
	lists int
}

func (m *mockItemRepo) matches(item domain.Item, f domain.ListFilter) bool {
	if f.From != nil && item.Modified.Before(*f.From) {
		return false
	}
	if f.Until != nil && !item.Modified.Before(*f.Until) {
		return false
	}
	if f.ItemSets != nil {
		found := false
		for _, want := range f.ItemSets {
			for _, have := range item.ItemSets {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *mockItemRepo) Find(ctx context.Context, id int64) (domain.Item, error) {
	if m.err != nil {
		return domain.Item{}, m.err
	}
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Item{}, domain.NotFoundError{Resource: "item"}
}

func (m *mockItemRepo) List(ctx context.Context, f domain.ListFilter, limit int) ([]domain.Item, error) {
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Item
	for _, item := range m.items {
		if item.ID > f.After && m.matches(item, f) && len(out) < limit {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockItemRepo) Count(ctx context.Context, f domain.ListFilter) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, item := range m.items {
		if m.matches(item, f) {
			n++
		}
	}
	return n, nil
}

func (m *mockItemRepo) Earliest(ctx context.Context) (time.Time, error) {
	if len(m.items) == 0 {
		return time.Time{}, domain.NotFoundError{Resource: "item"}
	}
	earliest := m.items[0].Modified
	for _, item := range m.items {
		if item.Modified.Before(earliest) {
			earliest = item.Modified
		}
	}
	return earliest, nil
}

type mockTokenStore struct {
	mu     sync.Mutex
	tokens map[string]domain.ResumptionToken
	seq    int
	now    func() time.Time
}

func newMockTokenStore(now func() time.Time) *mockTokenStore {
	return &mockTokenStore{tokens: map[string]domain.ResumptionToken{}, now: now}
}

func (m *mockTokenStore) Create(ctx context.Context, token domain.ResumptionToken) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	token.ID = fmt.Sprintf("tok%d", m.seq)
	m.tokens[token.ID] = token
	return token.ID, nil
}

func (m *mockTokenStore) Resolve(ctx context.Context, id string) (domain.ResumptionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[id]
	if !ok {
		return domain.ResumptionToken{}, domain.ErrTokenNotFound
	}
	if token.Expired(m.now()) {
		return domain.ResumptionToken{}, domain.ErrTokenExpired
	}
	return token, nil
}

func (m *mockTokenStore) Expire(ctx context.Context, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, token := range m.tokens {
		if token.Expired(now) {
			delete(m.tokens, id)
		}
	}
	return nil
}
