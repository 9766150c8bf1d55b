package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
)

const noteColumns = `id, title, category, description, user_id, created_at`

type NoteRepository struct {
	db DBTX
}

func NewNoteRepository(db DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

func scanNote(row pgx.Row) (*entity.Note, error) {
	n := &entity.Note{}
	if err := row.Scan(&n.ID, &n.Title, &n.Category, &n.Description, &n.UserID, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) Create(ctx context.Context, n *entity.Note) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO notes (title, category, description, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, n.Title, n.Category, n.Description, n.UserID)
	if err := row.Scan(&n.ID, &n.CreatedAt); err != nil {
		return wrapErr("create note", err)
	}
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entity.Note, error) {
	n, err := scanNote(r.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get note", err)
	}
	return n, nil
}

func (r *NoteRepository) List(ctx context.Context) ([]entity.Note, error) {
	rows, err := r.db.Query(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list notes", err)
	}
	defer rows.Close()

	notes := make([]entity.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, wrapErr("scan note row", err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate notes", err)
	}
	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, n *entity.Note) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notes SET title = $1, category = $2, description = $3, user_id = $4
		WHERE id = $5
	`, n.Title, n.Category, n.Description, n.UserID, n.ID)
	if err != nil {
		return wrapErr("update note", err)
	}
	return expectAffected("update note", tag)
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete note", err)
	}
	return expectAffected("delete note", tag)
}
