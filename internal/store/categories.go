package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is a named grouping tag kept as a lookup table. Products carry the
// category name as a plain string, so deletion is guarded by string equality
// against products.category rather than by a foreign key.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoriesStore struct {
	db *sql.DB
}

func (s *CategoriesStore) List(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Create inserts a category after trimming whitespace. Duplicate detection is
// case-sensitive, delegated to the unique constraint.
func (s *CategoriesStore) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c := Category{Name: name}
	err := s.db.QueryRowContext(
		ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`,
		name,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	return &c, nil
}

// Delete removes a category only while no product's category string equals
// its name. Check and delete share one transaction. Returns the deleted
// category's name.
func (s *CategoriesStore) Delete(ctx context.Context, id int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var name string
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT name FROM categories WHERE id = $1`, id).Scan(&name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		var count int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, name).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			return &InUseError{Resource: "category", Name: name, Count: count}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return name, nil
}
