package httpapi

import (
	"bytes"
	"fmt"

	"travia-admin/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ReservationsExportHeader column order of the reservation export.
var ReservationsExportHeader = []string{
	"Traveler",
	"Email",
	"State",
	"Total Price",
	"Payment Method",
	"Payment Status",
	"Partial Payment",
	"Partial Paid Amount",
	"Reference",
	"Booked At",
}

// GenerateReservationsExport builds the Excel sheet agencies download
// from the trip detail view.
func GenerateReservationsExport(reservations []*domain.Reservation) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close only happens on error paths

	sheetName := "Reservations"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ReservationsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, res := range reservations {
		row := i + 2
		values := []any{
			travelerName(res),
			travelerEmail(res),
			travelerState(res),
			res.TotalPrice,
			res.PaymentMethod.String,
			res.PaymentStatus,
			res.PartialPayment,
			res.PartialPaidAmount.Float64,
			res.PaymentReference.String,
			"",
		}
		if res.CreatedAt.Valid {
			values[9] = res.CreatedAt.Time.Format("2006-01-02 15:04")
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "J", 20); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	f.Close()
	return buf.Bytes(), nil
}

func travelerName(res *domain.Reservation) string {
	if res.User == nil {
		return ""
	}
	return res.User.FullName
}

func travelerEmail(res *domain.Reservation) string {
	if res.User == nil {
		return ""
	}
	return res.User.Email
}

func travelerState(res *domain.Reservation) string {
	if res.User == nil {
		return ""
	}
	return res.User.State.String
}
