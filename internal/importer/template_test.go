package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{SheetManufacturers, SheetCategories, SheetProducts}, sheets)

	rows, err := f.GetRows(SheetProducts)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"name", "category", "description", "manufacturer_name", "image_path"}, rows[0])
}

// The template must round-trip through the importer without fatal errors.
func TestTemplateImports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplate(path))

	catalog := newFakeCatalog()
	summary, err := New(catalog.storage()).ImportFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Categories.Inserted)
	assert.Equal(t, 2, summary.Manufacturers.Inserted)
	assert.Equal(t, 3, summary.Products.Inserted)
	assert.Empty(t, summary.Products.Skipped)
}
