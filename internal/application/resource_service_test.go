package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
)

func newCache(t *testing.T) (*helpers.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := helpers.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	return helpers.NewRedisCache(rdb, "notegenius:"), mr
}

func TestUserService_ListIsCachedAndInvalidated(t *testing.T) {
	cache, mr := newCache(t)
	users := newMemUsers()
	logger, _ := newTestLogger()
	svc := NewUserService(users, helpers.NewPasswordHasher(10), cache, time.Minute, logger)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Ann", "ann@example.com", "pw")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, mr.Exists("notegenius:"+usersListKey))

	// a write behind the service's back is invisible until invalidation
	require.NoError(t, users.Create(ctx, &entity.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"}))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Update(ctx, 1, "Ann B", "ann@example.com"))
	assert.False(t, mr.Exists("notegenius:"+usersListKey))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "Ann B", list[0].Name)
}

func TestUserService_CacheOutageFallsThrough(t *testing.T) {
	cache, mr := newCache(t)
	mr.Close()
	users := newMemUsers()
	logger, hook := newTestLogger()
	svc := NewUserService(users, helpers.NewPasswordHasher(10), cache, time.Minute, logger)

	require.NoError(t, users.Create(context.Background(), &entity.User{Name: "Ann", Email: "a@b.c"}))
	list, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	users := newMemUsers()
	logger, _ := newTestLogger()
	hasher := helpers.NewPasswordHasher(10)
	svc := NewUserService(users, hasher, nil, 0, logger)

	pu, err := svc.Create(context.Background(), "Ann", "ann@example.com", "plain")
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), pu.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "plain", stored.PasswordHash)
	assert.True(t, hasher.Verify("plain", stored.PasswordHash))
}

func TestUserService_Errors(t *testing.T) {
	users := newMemUsers()
	logger, _ := newTestLogger()
	svc := NewUserService(users, helpers.NewPasswordHasher(10), nil, 0, logger)
	ctx := context.Background()
	_, err := svc.Create(ctx, "Ann", "ann@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Bob", "bob@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Ann2", "ann@example.com", "pw")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, "", "x@example.com", "pw")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Missing required fields: name, email, password", MessageOf(err, ""))

	assert.ErrorIs(t, svc.Update(ctx, 2, "Bob", "ann@example.com"), ErrConflict)
	assert.ErrorIs(t, svc.Update(ctx, 9, "Z", "z@example.com"), ErrNotFound)
	assert.ErrorIs(t, svc.Update(ctx, 1, "", "z@example.com"), ErrValidation)

	_, err = svc.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, MsgUserNotFound, MessageOf(err, ""))

	assert.NoError(t, svc.Delete(ctx, 2))
	assert.ErrorIs(t, svc.Delete(ctx, 2), ErrNotFound)
}

type stubNotes struct {
	repo.NoteRepository
	createErr error
	updateErr error
	listErr   error
	created   []entity.Note
}

func (s *stubNotes) Create(_ context.Context, n *entity.Note) error {
	if s.createErr != nil {
		return s.createErr
	}
	n.ID = int64(len(s.created) + 1)
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotes) Update(_ context.Context, _ *entity.Note) error { return s.updateErr }

func (s *stubNotes) List(_ context.Context) ([]entity.Note, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.created, nil
}

func TestNoteService(t *testing.T) {
	logger, _ := newTestLogger()
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		svc := NewNoteService(&stubNotes{}, nil, 0, logger)
		err := svc.Create(ctx, &entity.Note{Title: "T", Category: "C", Description: "  ", UserID: 1})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "Missing required fields: title, category, description, user_id", MessageOf(err, ""))
	})

	t.Run("duplicate title", func(t *testing.T) {
		svc := NewNoteService(&stubNotes{createErr: repo.ErrConflict}, nil, 0, logger)
		err := svc.Create(ctx, &entity.Note{Title: "T", Category: "C", Description: "D", UserID: 1})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, "Title already exists", MessageOf(err, ""))
	})

	t.Run("update missing", func(t *testing.T) {
		svc := NewNoteService(&stubNotes{updateErr: repo.ErrNotFound}, nil, 0, logger)
		err := svc.Update(ctx, &entity.Note{ID: 3, Title: "T", Category: "C", Description: "D", UserID: 1})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "Note not found", MessageOf(err, ""))
	})

	t.Run("store failure", func(t *testing.T) {
		svc := NewNoteService(&stubNotes{listErr: errors.New("timeout")}, nil, 0, logger)
		_, err := svc.List(ctx)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("create trims and stores", func(t *testing.T) {
		stub := &stubNotes{}
		svc := NewNoteService(stub, nil, 0, logger)
		n := &entity.Note{Title: " T ", Category: "C", Description: "D", UserID: 1}
		require.NoError(t, svc.Create(ctx, n))
		assert.Equal(t, "T", stub.created[0].Title)
	})
}

func TestValidatePayment(t *testing.T) {
	assert.ErrorIs(t, validatePayment(&entity.Payment{Amount: 10, UserID: 1}), ErrValidation)
	assert.ErrorIs(t, validatePayment(&entity.Payment{Amount: 10, Method: "card"}), ErrValidation)
	assert.NoError(t, validatePayment(&entity.Payment{Amount: 0, Method: "card", UserID: 1}))
}

func TestValidateTicket(t *testing.T) {
	blank := " "
	ok := &entity.Ticket{UserID: 1, Name: "A", Email: "a@b.c", Title: "T", Description: "D", IssueType: "bug", Priority: &blank}

	require.NoError(t, validateTicket(ok))
	assert.Nil(t, ok.Priority)

	missing := &entity.Ticket{UserID: 1, Name: "A", Email: "a@b.c", Title: "T", Description: "D"}
	assert.ErrorIs(t, validateTicket(missing), ErrValidation)
}
