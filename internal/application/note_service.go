package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
)

const notesListKey = "notes:list"

type NoteService struct {
	Repo     repo.NoteRepository
	Cache    ListCache
	CacheTTL time.Duration
	Logger   logrus.FieldLogger
}

func NewNoteService(r repo.NoteRepository, cache ListCache, cacheTTL time.Duration, logger logrus.FieldLogger) *NoteService {
	return &NoteService{Repo: r, Cache: cache, CacheTTL: cacheTTL, Logger: logger}
}

func validateNote(n *entity.Note) error {
	n.Title = strings.TrimSpace(n.Title)
	n.Category = strings.TrimSpace(n.Category)
	n.Description = strings.TrimSpace(n.Description)
	if n.Title == "" || n.Category == "" || n.Description == "" || n.UserID == 0 {
		return validationError("Missing required fields: title, category, description, user_id")
	}
	return nil
}

func (s *NoteService) List(ctx context.Context) ([]entity.Note, error) {
	out, err := cachedList(ctx, s.Cache, s.CacheTTL, s.Logger, notesListKey, s.Repo.List)
	if err != nil {
		return nil, internalError("Failed to fetch notes", err)
	}
	return out, nil
}

func (s *NoteService) Get(ctx context.Context, id int64) (*entity.Note, error) {
	n, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "Note not found", "Failed to fetch note")
	}
	return n, nil
}

func (s *NoteService) Create(ctx context.Context, n *entity.Note) error {
	if err := validateNote(n); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return mapWriteErr(err, "Title already exists", "", "Failed to create note")
	}
	invalidate(ctx, s.Cache, s.Logger, notesListKey)
	return nil
}

func (s *NoteService) Update(ctx context.Context, n *entity.Note) error {
	if err := validateNote(n); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, n); err != nil {
		return mapWriteErr(err, "Title already exists", "Note not found", "Failed to update note")
	}
	invalidate(ctx, s.Cache, s.Logger, notesListKey)
	return nil
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "Note not found", "Failed to delete note")
	}
	invalidate(ctx, s.Cache, s.Logger, notesListKey)
	return nil
}
