package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound              = errors.New("resource not found")
	ErrDuplicateManufacturer = errors.New("a manufacturer with that name already exists")
	ErrDuplicateCategory     = errors.New("category already exists")
	ErrEmptyCategoryName     = errors.New("category name cannot be empty")
	ErrUnknownManufacturer   = errors.New("manufacturer does not exist")

	QueryTimeoutDuration = time.Second * 5
)

// InUseError reports a delete that is blocked by dependent products.
type InUseError struct {
	Resource string
	Name     string
	Count    int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("cannot delete %s %q because %d product(s) are using it", e.Resource, e.Name, e.Count)
}

type Storage struct {
	Manufacturers interface {
		List(context.Context) ([]Manufacturer, error)
		GetByID(context.Context, int64) (*Manufacturer, error)
		Create(context.Context, *Manufacturer) error
		Update(context.Context, *Manufacturer) error
		Delete(context.Context, int64) (string, error)
	}
	Products interface {
		List(context.Context, Filter) ([]Product, error)
		GetByID(context.Context, int64) (*Product, error)
		Create(context.Context, *Product) error
		Update(context.Context, *Product) error
		Delete(context.Context, int64) (string, error)
	}
	Categories interface {
		List(context.Context) ([]Category, error)
		Create(context.Context, string) (*Category, error)
		Delete(context.Context, int64) (string, error)
	}
	Stats interface {
		Overview(context.Context) (*Overview, error)
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Manufacturers: &ManufacturersStore{db},
		Products:      &ProductsStore{db},
		Categories:    &CategoriesStore{db},
		Stats:         &StatsStore{db},
	}
}

// withTx runs fn inside a serializable transaction so a pre-check and the
// mutation it guards see one consistent snapshot.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
