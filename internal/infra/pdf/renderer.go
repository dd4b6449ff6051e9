// internal/infra/pdf/renderer.go
package pdf

import (
	"bytes"
	"fmt"

	"shop_notifier/internal/domain/routine"

	"github.com/go-pdf/fpdf"
)

// Renderer turns a generated routine into a fully buffered PDF document.
// Rendering is deterministic for a given plan; any failure is reported as an
// error so the caller can permanently fail the originating record.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the personalized routine document. The whole document is
// buffered in memory; there is no streaming contract downstream.
func (r *Renderer) Render(recipientName string, plan *routine.Plan) (out []byte, err error) {
	if plan == nil {
		return nil, fmt.Errorf("render routine document: plan is nil")
	}
	// fpdf panics on some malformed inputs instead of recording an error;
	// contain that at this boundary.
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("render routine document: %v", rec)
		}
	}()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Your Personalized Skincare Routine", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, "Your Personalized Skincare Routine", "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, fmt.Sprintf("Prepared for %s", recipientName), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 9, fmt.Sprintf("Daily Products (%s skin)", plan.SkinType), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	for _, c := range []routine.Category{routine.CategoryCleanser, routine.CategoryToner, routine.CategoryMoisturizer, routine.CategorySunscreen} {
		doc.CellFormat(0, 7, fmt.Sprintf("%s: %s", c, plan.Product(c)), "", 1, "L", false, 0, "")
	}

	if len(plan.Serums) > 0 {
		doc.Ln(3)
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 9, "Targeted Serums", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		for _, s := range plan.Serums {
			doc.CellFormat(0, 7, "- "+s, "", 1, "L", false, 0, "")
		}
	}

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 9, fmt.Sprintf("Weekly Schedule (morning %s, evening %s)", plan.MorningTime, plan.EveningTime), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, day := range plan.Week {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, 6, day.Day, "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 5, "  AM: "+day.Morning, "", 1, "L", false, 0, "")
		doc.CellFormat(0, 5, "  PM: "+day.Evening, "", 1, "L", false, 0, "")
	}

	if len(plan.Tips) > 0 {
		doc.Ln(3)
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 9, "Personalized Tips", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, tip := range plan.Tips {
			doc.MultiCell(0, 5, "- "+tip, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render routine document: %w", err)
	}
	return buf.Bytes(), nil
}
