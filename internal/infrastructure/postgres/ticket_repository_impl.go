package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
)

const ticketColumns = `id, user_id, name, email, title, description, issue_type, priority, created_at`

type TicketRepository struct {
	db DBTX
}

func NewTicketRepository(db DBTX) *TicketRepository {
	return &TicketRepository{db: db}
}

func priorityParam(p *string) pgtype.Text {
	if p == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *p, Valid: true}
}

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	t := &entity.Ticket{}
	var priority pgtype.Text
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Email, &t.Title, &t.Description, &t.IssueType, &priority, &t.CreatedAt); err != nil {
		return nil, err
	}
	if priority.Valid {
		t.Priority = &priority.String
	}
	return t, nil
}

func (r *TicketRepository) Create(ctx context.Context, t *entity.Ticket) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO tickets (user_id, name, email, title, description, issue_type, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, t.UserID, t.Name, t.Email, t.Title, t.Description, t.IssueType, priorityParam(t.Priority))
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return wrapErr("create ticket", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get ticket", err)
	}
	return t, nil
}

func (r *TicketRepository) List(ctx context.Context) ([]entity.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list tickets", err)
	}
	defer rows.Close()

	tickets := make([]entity.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, wrapErr("scan ticket row", err)
		}
		tickets = append(tickets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate tickets", err)
	}
	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, t *entity.Ticket) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tickets
		SET user_id = $1, name = $2, email = $3, title = $4, description = $5, issue_type = $6, priority = $7
		WHERE id = $8
	`, t.UserID, t.Name, t.Email, t.Title, t.Description, t.IssueType, priorityParam(t.Priority), t.ID)
	if err != nil {
		return wrapErr("update ticket", err)
	}
	return expectAffected("update ticket", tag)
}

func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete ticket", err)
	}
	return expectAffected("delete ticket", tag)
}
