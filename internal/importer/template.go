package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteTemplate creates a sample workbook with the three sheets the importer
// understands, pre-filled with example rows.
func WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{
			name: SheetManufacturers,
			rows: [][]any{
				{"name", "description", "logo_path", "business_name", "business_address", "business_contact", "business_social_network"},
				{"ABC Company", "Leading food manufacturer", "manufacturer-logos/abc_logo.jpg", "ABC Food Industries Ltd.", "123 Main St, Phnom Penh", "+855 12 345 678", "facebook.com/abc"},
				{"Local Brand", "Traditional Khmer products", "manufacturer-logos/localbrand_logo.jpg", "Local Brand Co.", "789 Local Rd, Battambang", "+855 11 222 333", "instagram.com/localbrand"},
			},
		},
		{
			name: SheetCategories,
			rows: [][]any{
				{"name"},
				{"Food & Beverages"},
				{"Condiments & Sauces"},
				{"Household"},
				{"Dairy"},
			},
		},
		{
			name: SheetProducts,
			rows: [][]any{
				{"name", "category", "description", "manufacturer_name", "image_path"},
				{"Premium Rice", "Food & Beverages", "High quality jasmine rice", "ABC Company", "product-images/rice.jpg"},
				{"Traditional Sauce", "Condiments & Sauces", "Authentic Khmer fish sauce", "Local Brand", "product-images/sauce.jpg"},
				{"Organic Tea", "Food & Beverages", "Organic green tea", "Local Brand", "product-images/tea.jpg"},
			},
		},
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet.name, err)
		}
		for i, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("write sheet %q row %d: %w", sheet.name, i+1, err)
			}
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return f.SaveAs(path)
}
