package listing

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

func (s *PostgresStorage) Insert(ctx context.Context, l Listing) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO car_listing (listing_car_id, listing_user_id, listing_type, listing_description,
		                         listing_posting_date, listing_sale_price, listing_promoted, listing_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING listing_id`,
		l.CarID, l.UserID, l.Kind.String(), l.Description,
		l.PostingDate, l.SalePrice.String(), l.Promoted, l.Status.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert listing: %w", err)
	}
	return id, nil
}

func (s *PostgresStorage) Get(ctx context.Context, id int64) (*Listing, error) {
	row := s.db.QueryRow(ctx, `
		SELECT listing_id, listing_car_id, listing_user_id, listing_type, listing_description,
		       listing_posting_date, listing_sale_price::text, listing_promoted, listing_status
		FROM car_listing WHERE listing_id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (s *PostgresStorage) GetStatus(ctx context.Context, id int64) (ListingStatus, error) {
	var name string
	err := s.db.QueryRow(ctx,
		`SELECT listing_status FROM car_listing WHERE listing_id = $1`, id,
	).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get listing status: %w", err)
	}
	return ParseStatus(name)
}

func (s *PostgresStorage) UpdateFull(ctx context.Context, id int64, l Listing) (int64, error) {
	var updatedID int64
	err := s.db.QueryRow(ctx, `
		UPDATE car_listing SET listing_car_id = $1, listing_user_id = $2, listing_type = $3,
		       listing_description = $4, listing_posting_date = $5,
		       listing_sale_price = $6, listing_promoted = $7, listing_status = $8
		WHERE listing_id = $9 RETURNING listing_id`,
		l.CarID, l.UserID, l.Kind.String(), l.Description, l.PostingDate,
		l.SalePrice.String(), l.Promoted, l.Status.String(), id,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("update listing: %w", err)
	}
	return updatedID, nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id int64) error {
	var deletedID int64
	err := s.db.QueryRow(ctx,
		`DELETE FROM car_listing WHERE listing_id = $1 RETURNING listing_id`, id,
	).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

func (s *PostgresStorage) List(ctx context.Context, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.db.Query(ctx, `
		SELECT listing_id, listing_car_id, listing_user_id, listing_type, listing_description,
		       listing_posting_date, listing_sale_price::text, listing_promoted, listing_status
		FROM car_listing ORDER BY listing_id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("list listings: %w", err)
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

func scanListing(row pgx.Row) (*Listing, error) {
	var (
		l         Listing
		kind      string
		status    string
		salePrice string
	)
	err := row.Scan(&l.ID, &l.CarID, &l.UserID, &kind, &l.Description,
		&l.PostingDate, &salePrice, &l.Promoted, &status)
	if err != nil {
		return nil, err
	}
	if l.Kind, err = ParseKind(kind); err != nil {
		return nil, err
	}
	if l.Status, err = ParseStatus(status); err != nil {
		return nil, err
	}
	if l.SalePrice, err = decimal.NewFromString(salePrice); err != nil {
		return nil, fmt.Errorf("bad sale price %q: %w", salePrice, err)
	}
	return &l, nil
}
