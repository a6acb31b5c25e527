package directory

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Entreprises"

var exportHeaders = []string{
	"Identifiant", "Nom", "Domaine", "Localisation", "Certifications",
	"Chiffre d'affaires", "Effectifs", "Email", "Téléphone", "Expérience",
}

var exportWidths = []float64{14, 36, 18, 24, 30, 18, 12, 30, 18, 50}

// WriteWorkbook записывает компании в книгу xlsx
func WriteWorkbook(w io.Writer, companies []CompanyRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4285F4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", header, err)
		}
		f.SetCellStyle(exportSheetName, cell, cell, headerStyle)

		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheetName, col, col, exportWidths[i])
	}

	for idx, c := range companies {
		row := []interface{}{
			c.ID, c.Name, c.Domain, c.Location, strings.Join(c.Certifications, ", "),
			c.CA, c.Employees, c.Email(), c.Phone(), c.Experience,
		}
		cell, _ := excelize.CoordinatesToCellName(1, idx+2)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write company %s: %w", c.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
