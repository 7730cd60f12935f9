package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Manufacturer represents a producer/brand owning zero or more products.
type Manufacturer struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	LogoPath              string    `json:"logo_path"`
	BusinessName          string    `json:"business_name"`
	BusinessAddress       string    `json:"business_address"`
	BusinessContact       string    `json:"business_contact"`
	BusinessSocialNetwork string    `json:"business_social_network"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type ManufacturersStore struct {
	db *sql.DB
}

func (s *ManufacturersStore) List(ctx context.Context) ([]Manufacturer, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, description, logo_path, business_name, business_address,
		       business_contact, business_social_network, created_at, updated_at
		FROM manufacturers
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	manufacturers := []Manufacturer{}
	for rows.Next() {
		var m Manufacturer
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.LogoPath,
			&m.BusinessName,
			&m.BusinessAddress,
			&m.BusinessContact,
			&m.BusinessSocialNetwork,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		manufacturers = append(manufacturers, m)
	}

	return manufacturers, rows.Err()
}

func (s *ManufacturersStore) GetByID(ctx context.Context, id int64) (*Manufacturer, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, description, logo_path, business_name, business_address,
		       business_contact, business_social_network, created_at, updated_at
		FROM manufacturers
		WHERE id = $1
	`

	var m Manufacturer
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.LogoPath,
		&m.BusinessName,
		&m.BusinessAddress,
		&m.BusinessContact,
		&m.BusinessSocialNetwork,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (s *ManufacturersStore) Create(ctx context.Context, m *Manufacturer) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO manufacturers (name, description, logo_path, business_name,
		                           business_address, business_contact, business_social_network)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(
		ctx, query,
		m.Name,
		m.Description,
		m.LogoPath,
		m.BusinessName,
		m.BusinessAddress,
		m.BusinessContact,
		m.BusinessSocialNetwork,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateManufacturer
		}
		return err
	}

	return nil
}

// Update replaces every listed field and refreshes updated_at.
func (s *ManufacturersStore) Update(ctx context.Context, m *Manufacturer) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE manufacturers
		SET name = $1, description = $2, logo_path = $3, business_name = $4,
		    business_address = $5, business_contact = $6, business_social_network = $7,
		    updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(
		ctx, query,
		m.Name,
		m.Description,
		m.LogoPath,
		m.BusinessName,
		m.BusinessAddress,
		m.BusinessContact,
		m.BusinessSocialNetwork,
		m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrNotFound
		case isUniqueViolation(err):
			return ErrDuplicateManufacturer
		default:
			return err
		}
	}

	return nil
}

// Delete removes a manufacturer only when no product references it. The
// existence check, the dependent-product count and the delete run in one
// transaction. Returns the deleted manufacturer's name.
func (s *ManufacturersStore) Delete(ctx context.Context, id int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var name string
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT name FROM manufacturers WHERE id = $1`, id).Scan(&name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		var count int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE manufacturer_id = $1`, id).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			return &InUseError{Resource: "manufacturer", Name: name, Count: count}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM manufacturers WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete manufacturer: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return name, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign_key_violation.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
