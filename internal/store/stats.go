package store

import (
	"context"
	"database/sql"
)

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Overview aggregates the catalog. TotalCategories counts the distinct
// category values actually used by products, not the lookup table's rows.
type Overview struct {
	TotalProducts      int             `json:"total_products"`
	TotalManufacturers int             `json:"total_manufacturers"`
	TotalCategories    int             `json:"total_categories"`
	CategoryBreakdown  []CategoryCount `json:"category_breakdown"`
}

type StatsStore struct {
	db *sql.DB
}

func (s *StatsStore) Overview(ctx context.Context) (*Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var o Overview

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&o.TotalProducts); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM manufacturers`).Scan(&o.TotalManufacturers); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT category) FROM products`).Scan(&o.TotalCategories); err != nil {
		return nil, err
	}

	// category_stats is the view ordered by product_count descending.
	rows, err := s.db.QueryContext(ctx, `SELECT category, product_count FROM category_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.CategoryBreakdown = []CategoryCount{}
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		o.CategoryBreakdown = append(o.CategoryBreakdown, cc)
	}

	return &o, rows.Err()
}
