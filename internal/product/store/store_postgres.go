package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/product/models"
	"storefront/pkg/platform/sentinel"
)

// Postgres persists products in PostgreSQL. Tags and metadata are stored as
// JSONB; effective-price filtering happens in SQL via COALESCE so sales are
// honored without loading rows.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed product store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the products table if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT,
			price       DOUBLE PRECISION,
			sale_price  DOUBLE PRECISION,
			status      TEXT NOT NULL,
			tags        JSONB NOT NULL,
			metadata    JSONB NOT NULL,
			vendor_id   UUID NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	return nil
}

const productColumns = `id, name, description, price, sale_price, status, tags, metadata, vendor_id, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, p *models.Product) error {
	tags, metadata, err := marshalProductDocs(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Description, p.Price, p.SalePrice, p.Status,
		tags, metadata, p.VendorID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Postgres) List(ctx context.Context, f Filter, page, size int) ([]*models.Product, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products%s ORDER BY created_at, id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := s.db.QueryContext(ctx, query, append(args, size, (page-1)*size)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0, size)
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func buildFilter(f Filter) (string, []any) {
	var clauses []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		clauses = append(clauses, "status = "+arg(*f.Status))
	}
	if f.MinPrice != nil {
		clauses = append(clauses, "COALESCE(sale_price, price) >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, "COALESCE(sale_price, price) <= "+arg(*f.MaxPrice))
	}
	if f.Tag != nil {
		clauses = append(clauses, "tags @> "+arg(fmt.Sprintf("%q", *f.Tag)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (s *Postgres) Update(ctx context.Context, p *models.Product) error {
	tags, metadata, err := marshalProductDocs(p)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, sale_price = $5,
		    status = $6, tags = $7, metadata = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.SalePrice, p.Status,
		tags, metadata, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanProduct(scan func(dest ...any) error) (*models.Product, error) {
	var (
		p        models.Product
		tags     []byte
		metadata []byte
	)
	if err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.SalePrice, &p.Status,
		&tags, &metadata, &p.VendorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &p, nil
}

func marshalProductDocs(p *models.Product) ([]byte, []byte, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tags: %w", err)
	}
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("encode metadata: %w", err)
	}
	return tags, metadata, nil
}
