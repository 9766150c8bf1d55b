package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
)

// memUsers is an in-memory UserRepository keyed by id with a unique email index.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*entity.User
	err    error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, x := range m.byID {
		if x.Email == u.Email {
			return repo.ErrConflict
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]entity.User, 0, len(m.byID))
	for id := int64(1); id <= m.nextID; id++ {
		if u, ok := m.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	for id, x := range m.byID {
		if id != u.ID && x.Email == u.Email {
			return repo.ErrConflict
		}
	}
	cur.Name, cur.Email = u.Name, u.Email
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// countingHasher records Verify calls so timing-equalization can be asserted.
type countingHasher struct {
	*helpers.PasswordHasher
	mu       sync.Mutex
	verifies int
}

func (h *countingHasher) Verify(plain, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.PasswordHasher.Verify(plain, hash)
}

type recordingNotifier struct {
	calls []string
	err   error
}

func (n *recordingNotifier) NotifyPasswordReset(_ context.Context, u *entity.User, token string, _ time.Time) error {
	n.calls = append(n.calls, u.Email+"|"+token)
	return n.err
}

type failingTokens struct{ TokenService }

func (failingTokens) Issue(helpers.TokenClaims, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, errors.New("sign failed")
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
