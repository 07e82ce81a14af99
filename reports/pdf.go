package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"

	"successspace/utils"
)

// OrdersReportPDF handles GET /api/admin/reports/orders/pdf. It renders the
// same aggregate as OrdersReport as a downloadable PDF.
func (h *Handlers) OrdersReportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rng, dateStr := queryWindow(r)
	sum, err := Aggregate(h.store, rng, dateStr)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Orders Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Range: %s (%s)", sum.Range, sum.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Orders: %d", sum.Orders))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Total: $%.2f", sum.Total))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, "Items sold")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)

	names := make([]string, 0, len(sum.Items))
	for name := range sum.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %d", name, sum.Items[name]))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s-%s.pdf", sum.Range, sum.Date))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
