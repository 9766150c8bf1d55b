package repository

import (
	"context"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
)

type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByID(ctx context.Context, id int64) (*entity.Note, error)
	List(ctx context.Context) ([]entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, id int64) error
}
