package repository

import (
	"context"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	List(ctx context.Context) ([]entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id int64) error
}
