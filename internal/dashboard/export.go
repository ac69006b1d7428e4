package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteReportCSV writes the report rows with the same columns as the
// on-screen table.
func WriteReportCSV(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Title", "Type", "Date", "Created By"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.ID, row.Title, row.Type, row.Date, row.CreatedBy}); err != nil {
			return fmt.Errorf("write row %s: %w", row.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
