package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"

	"showroom-backend/internal/models"
	"showroom-backend/internal/timeutil"
)

type ReportService struct {
	sales SaleStore
}

func NewReportService(sales SaleStore) *ReportService {
	return &ReportService{sales: sales}
}

// fetch resolves the optional window selector; an empty window means the
// full sales history.
func (s *ReportService) fetch(ctx context.Context, window string) ([]models.SaleWithVehicle, error) {
	if window == "" {
		return s.sales.ListAll(ctx)
	}
	start, err := resolveWindowStart(window, timeutil.Now())
	if err != nil {
		return nil, err
	}
	return s.sales.ListSince(ctx, start)
}

// SalesCSV renders the sales in the window as a CSV document.
func (s *ReportService) SalesCSV(ctx context.Context, window string) ([]byte, error) {
	sales, err := s.fetch(ctx, window)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"ID", "Tanggal", "Kendaraan", "Pembeli", "Sales", "Metode", "Harga Jual", "Total"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sale := range sales {
		record := []string{
			strconv.Itoa(sale.ID),
			timeutil.ToWIB(sale.TanggalJual).Format(timeutil.DateLayout),
			fmt.Sprintf("%s %s %d", sale.Merk, sale.Series, sale.Tahun),
			sale.NamaPembeli,
			agentName(sale),
			sale.MetodePembayaran,
			strconv.FormatInt(sale.HargaJual, 10),
			strconv.FormatInt(sale.TotalHarga, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SalesPDF renders the sales in the window as a landscape A4 table with a
// grand total footer row.
func (s *ReportService) SalesPDF(ctx context.Context, window string) ([]byte, error) {
	sales, err := s.fetch(ctx, window)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Laporan Penjualan")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Dibuat: "+timeutil.Now().Format(timeutil.DisplayLayout))
	pdf.Ln(12)

	widths := []float64{12, 26, 70, 45, 35, 22, 33, 34}
	headers := []string{"ID", "Tanggal", "Kendaraan", "Pembeli", "Sales", "Metode", "Harga Jual", "Total"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	var grandTotal int64
	for _, sale := range sales {
		cells := []string{
			strconv.Itoa(sale.ID),
			timeutil.ToWIB(sale.TanggalJual).Format(timeutil.DateLayout),
			fmt.Sprintf("%s %s %d", sale.Merk, sale.Series, sale.Tahun),
			sale.NamaPembeli,
			agentName(sale),
			sale.MetodePembayaran,
			formatRupiah(sale.HargaJual),
			formatRupiah(sale.TotalHarga),
		}
		for i, c := range cells {
			align := "L"
			if i == 0 || i == 6 || i == 7 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
		grandTotal += sale.TotalHarga
	}

	pdf.SetFont("Arial", "B", 10)
	var labelWidth float64
	for _, w := range widths[:7] {
		labelWidth += w
	}
	pdf.CellFormat(labelWidth, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[7], 8, formatRupiah(grandTotal), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func agentName(sale models.SaleWithVehicle) string {
	if sale.SalesNama == "" {
		return "Unknown"
	}
	return sale.SalesNama
}

// formatRupiah renders an amount with thousands separators, e.g.
// "Rp 150.000.000".
func formatRupiah(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	prefix := "Rp "
	if negative {
		prefix = "Rp -"
	}
	return prefix + string(out)
}
