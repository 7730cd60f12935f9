// Package importer loads manufacturers, categories and products from an
// Excel workbook into the catalog store. It is the offline batch path: sheets
// are processed in dependency order and rows that would violate catalog
// invariants are skipped, never fatal.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"srok/internal/store"
)

const (
	SheetManufacturers = "Manufacturers"
	SheetCategories    = "Categories"
	SheetProducts      = "Products"
)

// SheetResult accounts for one sheet of an import run.
type SheetResult struct {
	Sheet    string
	Inserted int
	Skipped  []string
}

type Summary struct {
	Categories    SheetResult
	Manufacturers SheetResult
	Products      SheetResult
}

type Importer struct {
	store store.Storage
}

func New(st store.Storage) *Importer {
	return &Importer{store: st}
}

// ImportFile imports the three known sheets of the workbook at path, in
// order: categories, then manufacturers, then products.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var summary Summary
	summary.Categories, err = imp.importCategories(ctx, f)
	if err != nil {
		return nil, err
	}
	summary.Manufacturers, err = imp.importManufacturers(ctx, f)
	if err != nil {
		return nil, err
	}
	summary.Products, err = imp.importProducts(ctx, f)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (imp *Importer) importCategories(ctx context.Context, f *excelize.File) (SheetResult, error) {
	res := SheetResult{Sheet: SheetCategories}

	rows, header, err := sheetRows(f, SheetCategories)
	if err != nil {
		return res, err
	}

	for _, row := range rows {
		name := cell(row, header, "name")
		if _, err := imp.store.Categories.Create(ctx, name); err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicateCategory):
				res.Skipped = append(res.Skipped, fmt.Sprintf("duplicate category %q", name))
			case errors.Is(err, store.ErrEmptyCategoryName):
				res.Skipped = append(res.Skipped, "category row with empty name")
			default:
				return res, fmt.Errorf("insert category %q: %w", name, err)
			}
			continue
		}
		res.Inserted++
	}

	return res, nil
}

func (imp *Importer) importManufacturers(ctx context.Context, f *excelize.File) (SheetResult, error) {
	res := SheetResult{Sheet: SheetManufacturers}

	rows, header, err := sheetRows(f, SheetManufacturers)
	if err != nil {
		return res, err
	}

	for _, row := range rows {
		m := store.Manufacturer{
			Name:                  cell(row, header, "name"),
			Description:           cell(row, header, "description"),
			LogoPath:              cell(row, header, "logo_path"),
			BusinessName:          cell(row, header, "business_name"),
			BusinessAddress:       cell(row, header, "business_address"),
			BusinessContact:       cell(row, header, "business_contact"),
			BusinessSocialNetwork: cell(row, header, "business_social_network"),
		}
		if m.Name == "" {
			res.Skipped = append(res.Skipped, "manufacturer row with empty name")
			continue
		}
		if err := imp.store.Manufacturers.Create(ctx, &m); err != nil {
			if errors.Is(err, store.ErrDuplicateManufacturer) {
				res.Skipped = append(res.Skipped, fmt.Sprintf("duplicate manufacturer %q", m.Name))
				continue
			}
			return res, fmt.Errorf("insert manufacturer %q: %w", m.Name, err)
		}
		res.Inserted++
	}

	return res, nil
}

func (imp *Importer) importProducts(ctx context.Context, f *excelize.File) (SheetResult, error) {
	res := SheetResult{Sheet: SheetProducts}

	rows, header, err := sheetRows(f, SheetProducts)
	if err != nil {
		return res, err
	}

	manufacturers, err := imp.store.Manufacturers.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list manufacturers: %w", err)
	}
	byName := make(map[string]int64, len(manufacturers))
	for _, m := range manufacturers {
		byName[m.Name] = m.ID
	}

	existing, err := imp.store.Products.List(ctx, store.Filter{})
	if err != nil {
		return res, fmt.Errorf("list products: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		if p.ManufacturerID != nil {
			seen[productKey(p.Name, *p.ManufacturerID)] = true
		}
	}

	for _, row := range rows {
		name := cell(row, header, "name")
		category := cell(row, header, "category")
		manufacturerName := cell(row, header, "manufacturer_name")

		if name == "" || category == "" || manufacturerName == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("product %q missing name, category or manufacturer_name", name))
			continue
		}

		manufacturerID, ok := byName[manufacturerName]
		if !ok {
			res.Skipped = append(res.Skipped, fmt.Sprintf("product %q: manufacturer %q not found", name, manufacturerName))
			continue
		}

		if seen[productKey(name, manufacturerID)] {
			res.Skipped = append(res.Skipped, fmt.Sprintf("duplicate product %q from %q", name, manufacturerName))
			continue
		}

		p := store.Product{
			Name:           name,
			Category:       category,
			Description:    cell(row, header, "description"),
			ManufacturerID: &manufacturerID,
			ImagePath:      cell(row, header, "image_path"),
		}
		if err := imp.store.Products.Create(ctx, &p); err != nil {
			return res, fmt.Errorf("insert product %q: %w", name, err)
		}
		seen[productKey(name, manufacturerID)] = true
		res.Inserted++
	}

	return res, nil
}

func productKey(name string, manufacturerID int64) string {
	return fmt.Sprintf("%s|%d", name, manufacturerID)
}

// sheetRows returns the data rows and a header-name → column index map.
func sheetRows(f *excelize.File, sheet string) ([][]string, map[string]int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, map[string]int{}, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return rows[1:], header, nil
}

func cell(row []string, header map[string]int, column string) string {
	i, ok := header[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
