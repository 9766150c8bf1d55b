package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/notegenius-api/internal/domain/entity"
)

const paymentColumns = `id, amount, method, user_id, created_at`

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	p := &entity.Payment{}
	if err := row.Scan(&p.ID, &p.Amount, &p.Method, &p.UserID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO payments (amount, method, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.Amount, p.Method, p.UserID)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return wrapErr("create payment", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get payment", err)
	}
	return p, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]entity.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list payments", err)
	}
	defer rows.Close()

	payments := make([]entity.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, wrapErr("scan payment row", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate payments", err)
	}
	return payments, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *entity.Payment) error {
	tag, err := r.db.Exec(ctx, `UPDATE payments SET amount = $1, method = $2, user_id = $3 WHERE id = $4`,
		p.Amount, p.Method, p.UserID, p.ID)
	if err != nil {
		return wrapErr("update payment", err)
	}
	return expectAffected("update payment", tag)
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete payment", err)
	}
	return expectAffected("delete payment", tag)
}
