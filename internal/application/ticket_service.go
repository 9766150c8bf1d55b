package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
	repo "github.com/oksasatya/notegenius-api/internal/domain/repository"
)

const ticketsListKey = "tickets:list"

type TicketService struct {
	Repo     repo.TicketRepository
	Cache    ListCache
	CacheTTL time.Duration
	Logger   logrus.FieldLogger
}

func NewTicketService(r repo.TicketRepository, cache ListCache, cacheTTL time.Duration, logger logrus.FieldLogger) *TicketService {
	return &TicketService{Repo: r, Cache: cache, CacheTTL: cacheTTL, Logger: logger}
}

func validateTicket(t *entity.Ticket) error {
	for _, f := range []*string{&t.Name, &t.Email, &t.Title, &t.Description, &t.IssueType} {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return validationError("Missing required fields: user_id, name, email, title, description, issue_type")
		}
	}
	if t.UserID == 0 {
		return validationError("Missing required fields: user_id, name, email, title, description, issue_type")
	}
	if t.Priority != nil && strings.TrimSpace(*t.Priority) == "" {
		t.Priority = nil
	}
	return nil
}

func (s *TicketService) List(ctx context.Context) ([]entity.Ticket, error) {
	out, err := cachedList(ctx, s.Cache, s.CacheTTL, s.Logger, ticketsListKey, s.Repo.List)
	if err != nil {
		return nil, internalError("Failed to fetch tickets", err)
	}
	return out, nil
}

func (s *TicketService) Get(ctx context.Context, id int64) (*entity.Ticket, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "Ticket not found", "Failed to fetch ticket")
	}
	return t, nil
}

func (s *TicketService) Create(ctx context.Context, t *entity.Ticket) error {
	if err := validateTicket(t); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return internalError("Failed to create ticket", err)
	}
	invalidate(ctx, s.Cache, s.Logger, ticketsListKey)
	return nil
}

func (s *TicketService) Update(ctx context.Context, t *entity.Ticket) error {
	if err := validateTicket(t); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, t); err != nil {
		return mapWriteErr(err, "", "Ticket not found", "Failed to update ticket")
	}
	invalidate(ctx, s.Cache, s.Logger, ticketsListKey)
	return nil
}

func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "Ticket not found", "Failed to delete ticket")
	}
	invalidate(ctx, s.Cache, s.Logger, ticketsListKey)
	return nil
}
