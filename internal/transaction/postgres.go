package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStorage implements Storage on a pgx connection pool.
type PostgresStorage struct {
	db *pgxpool.Pool
}

// NewPostgresStorage wraps an existing connection pool.
func NewPostgresStorage(db *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) Insert(ctx context.Context, t Transaction) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO transaction (buyer_id, car_id, transaction_type, total_amount,
		                         transaction_status, transaction_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING transaction_id`,
		t.BuyerID, t.CarID, t.Kind.String(), t.TotalAmount.String(),
		t.Status.String(), t.TransactionDate, t.EndDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

func (s *PostgresStorage) Get(ctx context.Context, id int64) (*Transaction, error) {
	row := s.db.QueryRow(ctx, `
		SELECT transaction_id, buyer_id, car_id, transaction_type, total_amount::text,
		       transaction_status, transaction_date, end_date
		FROM transaction WHERE transaction_id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id int64) error {
	var deletedID int64
	err := s.db.QueryRow(ctx,
		`DELETE FROM transaction WHERE transaction_id = $1 RETURNING transaction_id`, id,
	).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *PostgresStorage) List(ctx context.Context, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.Query(ctx, `
		SELECT transaction_id, buyer_id, car_id, transaction_type, total_amount::text,
		       transaction_status, transaction_date, end_date
		FROM transaction ORDER BY transaction_id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var (
		t      Transaction
		kind   string
		status string
		amount string
	)
	err := row.Scan(&t.ID, &t.BuyerID, &t.CarID, &kind, &amount,
		&status, &t.TransactionDate, &t.EndDate)
	if err != nil {
		return nil, err
	}
	if t.Kind, err = ParseKind(kind); err != nil {
		return nil, err
	}
	if t.Status, err = ParseStatus(status); err != nil {
		return nil, err
	}
	if t.TotalAmount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("bad total amount %q: %w", amount, err)
	}
	return &t, nil
}
