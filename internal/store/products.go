package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Product is a catalog item referencing at most one manufacturer. Category is
// a denormalized string copied at write time, not a foreign key.
type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	ManufacturerID   *int64    `json:"manufacturer_id"`
	ImagePath        string    `json:"image_path"`
	ManufacturerName *string   `json:"manufacturer_name,omitempty"`
	ManufacturerLogo *string   `json:"manufacturer_logo,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Filter narrows a product listing. Zero values mean "no constraint"; all
// present constraints are AND-combined.
type Filter struct {
	Category     string
	Manufacturer string
	Search       string
}

type ProductsStore struct {
	db *sql.DB
}

const productColumns = `
	p.id, p.name, p.category, p.description, p.manufacturer_id, p.image_path,
	p.created_at, p.updated_at, m.name AS manufacturer_name, m.logo_path AS manufacturer_logo`

func (s *ProductsStore) List(ctx context.Context, f Filter) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT` + productColumns + `
	FROM products p
	LEFT JOIN manufacturers m ON p.manufacturer_id = m.id`

	var conditions []string
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if f.Manufacturer != "" {
		args = append(args, f.Manufacturer)
		conditions = append(conditions, fmt.Sprintf("m.name = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (s *ProductsStore) GetByID(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT` + productColumns + `
	FROM products p
	LEFT JOIN manufacturers m ON p.manufacturer_id = m.id
	WHERE p.id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (s *ProductsStore) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO products (name, category, description, manufacturer_id, image_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(
		ctx, query,
		p.Name,
		p.Category,
		p.Description,
		p.ManufacturerID,
		p.ImagePath,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUnknownManufacturer
		}
		return err
	}

	return nil
}

// Update replaces every listed field and refreshes updated_at. Callers that
// want to keep the stored image path pass the prior value through.
func (s *ProductsStore) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, category = $2, description = $3, manufacturer_id = $4,
		    image_path = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(
		ctx, query,
		p.Name,
		p.Category,
		p.Description,
		p.ManufacturerID,
		p.ImagePath,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrNotFound
		case isForeignKeyViolation(err):
			return ErrUnknownManufacturer
		default:
			return err
		}
	}

	return nil
}

// Delete removes a product unconditionally; nothing references products.
// Returns the deleted product's name.
func (s *ProductsStore) Delete(ctx context.Context, id int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var name string
	err := s.db.QueryRowContext(ctx, `DELETE FROM products WHERE id = $1 RETURNING name`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return name, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p                Product
		manufacturerID   sql.NullInt64
		manufacturerName sql.NullString
		manufacturerLogo sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Description,
		&manufacturerID,
		&p.ImagePath,
		&p.CreatedAt,
		&p.UpdatedAt,
		&manufacturerName,
		&manufacturerLogo,
	)
	if err != nil {
		return nil, err
	}

	if manufacturerID.Valid {
		p.ManufacturerID = &manufacturerID.Int64
	}
	if manufacturerName.Valid {
		p.ManufacturerName = &manufacturerName.String
	}
	if manufacturerLogo.Valid {
		p.ManufacturerLogo = &manufacturerLogo.String
	}

	return &p, nil
}
