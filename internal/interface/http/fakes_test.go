package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
	"github.com/oksasatya/notegenius-api/internal/infrastructure/search"
)

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
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
	for id, other := range m.byID {
		if id != u.ID && other.Email == u.Email {
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

type memNotes struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]entity.Note
	err    error
}

func newMemNotes() *memNotes { return &memNotes{byID: map[int64]entity.Note{}} }

func (m *memNotes) Create(_ context.Context, n *entity.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.Title == n.Title {
			return repo.ErrConflict
		}
	}
	m.nextID++
	n.ID = m.nextID
	n.CreatedAt = time.Now().UTC()
	m.byID[n.ID] = *n
	return nil
}

func (m *memNotes) GetByID(_ context.Context, id int64) (*entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &n, nil
}

func (m *memNotes) List(_ context.Context) ([]entity.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]entity.Note, 0, len(m.byID))
	for id := int64(1); id <= m.nextID; id++ {
		if n, ok := m.byID[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotes) Update(_ context.Context, n *entity.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[n.ID]; !ok {
		return repo.ErrNotFound
	}
	m.byID[n.ID] = *n
	return nil
}

func (m *memNotes) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type auditSpy struct {
	mu     sync.Mutex
	events []search.AuthEvent
}

func (a *auditSpy) Record(_ context.Context, ev search.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *auditSpy) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
