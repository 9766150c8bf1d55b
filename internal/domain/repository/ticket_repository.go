package repository

import (
	"context"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
)

type TicketRepository interface {
	Create(ctx context.Context, t *entity.Ticket) error
	GetByID(ctx context.Context, id int64) (*entity.Ticket, error)
	List(ctx context.Context) ([]entity.Ticket, error)
	Update(ctx context.Context, t *entity.Ticket) error
	Delete(ctx context.Context, id int64) error
}
