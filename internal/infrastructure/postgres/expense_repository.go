package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, project_id, label, supplier, category, amount_ht, vat_rate, amount_ttc, date,
	payment_status, invoice_number, document_key, created_at, updated_at`

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func scanExpense(row rowScanner) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(&e.ID, &e.ProjectID, &e.Label, &e.Supplier, &e.Category, &e.AmountHT, &e.VATRate, &e.AmountTTC, &e.Date,
		&e.PaymentStatus, &e.InvoiceNumber, &e.DocumentKey, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.ProjectID, e.Label, e.Supplier, e.Category, e.AmountHT, e.VATRate, e.AmountTTC, e.Date,
		e.PaymentStatus, e.InvoiceNumber, e.DocumentKey, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListByProject lista los gastos del proyecto, más recientes primero.
func (r *ExpenseRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Expense, error) {
	rows, err := r.q.Query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE project_id = $1 ORDER BY date DESC, created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `
		UPDATE expenses SET label = $2, supplier = $3, category = $4, amount_ht = $5, vat_rate = $6, amount_ttc = $7,
			date = $8, payment_status = $9, invoice_number = $10, document_key = $11, updated_at = $12
		WHERE id = $1`,
		e.ID, e.Label, e.Supplier, e.Category, e.AmountHT, e.VATRate, e.AmountTTC,
		e.Date, e.PaymentStatus, e.InvoiceNumber, e.DocumentKey, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
