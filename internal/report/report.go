package report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"futarinavi/internal/dates"
	"futarinavi/internal/timeline"

	"github.com/jung-kurt/gofpdf"
)

// PDF design system colors
var (
	cNavy    = [3]int{27, 58, 84}
	cRose    = [3]int{192, 82, 96}
	cRed     = [3]int{200, 50, 50}
	cAmber   = [3]int{154, 123, 46}
	cGreen   = [3]int{42, 107, 69}
	cInk90   = [3]int{38, 38, 38}
	cInk50   = [3]int{107, 107, 107}
	cInk30   = [3]int{160, 160, 160}
	cInk08   = [3]int{235, 235, 235}
	cWhite   = [3]int{255, 255, 255}
	cCreamBg = [3]int{248, 247, 243}
)

const (
	pageW    = 210.0
	pageH    = 297.0
	marginL  = 18.0
	marginR  = 18.0
	marginT  = 18.0
	contentW = pageW - marginL - marginR

	jpFont = "jp"
)

func setFill(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }
func setDraw(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetDrawColor(c[0], c[1], c[2]) }

func urgencyColor(u timeline.Urgency) [3]int {
	switch u {
	case timeline.UrgencyOverdue:
		return cRed
	case timeline.UrgencyUrgent:
		return cRose
	case timeline.UrgencySoon:
		return cAmber
	default:
		return cInk50
	}
}

// Options controls rendering.
type Options struct {
	// FontPath points at a UTF-8 TTF with Japanese glyphs. Empty means
	// Helvetica, with ids and keys printed instead of Japanese text.
	FontPath    string
	GeneratedAt time.Time
}

type writer struct {
	pdf      *gofpdf.Fpdf
	japanese bool
}

func (w writer) font(style string, size float64) {
	if w.japanese {
		// UTF-8 fonts are registered without bold variants.
		w.pdf.SetFont(jpFont, "", size)
		return
	}
	w.pdf.SetFont("Helvetica", style, size)
}

// pick returns ja when a Japanese font is loaded, otherwise ascii.
func (w writer) pick(ja, ascii string) string {
	if w.japanese {
		return ja
	}
	return ascii
}

func (w writer) ensureSpace(needed float64) {
	if w.pdf.GetY()+needed > pageH-22 {
		w.pdf.AddPage()
		w.pdf.SetY(marginT + 4)
	}
}

// TimelinePDF renders the checklist of items grouped by category.
func TimelinePDF(items []timeline.Item, sum timeline.Summary, marriageDate time.Time, opts Options) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginL, marginT, marginR)
	pdf.SetAutoPageBreak(false, 20)

	w := writer{pdf: pdf}
	if opts.FontPath != "" {
		if _, err := os.Stat(opts.FontPath); err != nil {
			return nil, fmt.Errorf("report: font: %w", err)
		}
		pdf.AddUTF8Font(jpFont, "", opts.FontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("report: font: %w", err)
		}
		w.japanese = true
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		setDraw(pdf, cInk08)
		pdf.SetLineWidth(0.3)
		pdf.Line(marginL, pdf.GetY(), pageW-marginR, pdf.GetY())
		pdf.SetY(-11)
		w.font("", 7)
		setText(pdf, cInk30)
		pdf.SetX(marginL)
		pdf.CellFormat(contentW/2, 8, "futarinavi", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 8, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Header band
	headerH := 38.0
	setFill(pdf, cNavy)
	pdf.Rect(0, 0, pageW, headerH, "F")
	pdf.SetXY(marginL, 12)
	w.font("B", 20)
	setText(pdf, cWhite)
	pdf.CellFormat(contentW, 9, w.pick("ふたりナビ 手続きチェックリスト", "Futarinavi checklist"), "", 1, "L", false, 0, "")
	pdf.SetX(marginL)
	w.font("", 9)
	pdf.SetTextColor(200, 210, 225)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s %s  /  %s %s",
		w.pick("結婚日", "Marriage date"), dates.Format(marriageDate),
		w.pick("作成日", "Generated"), opts.GeneratedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")

	// Progress card
	pdf.SetY(headerH + 6)
	setFill(pdf, cCreamBg)
	pdf.Rect(marginL, pdf.GetY(), contentW, 16, "F")
	pdf.SetXY(marginL+4, pdf.GetY()+3)
	w.font("B", 11)
	setText(pdf, cInk90)
	pdf.CellFormat(contentW-8, 5, fmt.Sprintf("%d / %d (%d%%)", sum.Completed, sum.Total, sum.Percent), "", 1, "L", false, 0, "")
	pdf.SetX(marginL + 4)
	w.font("", 8.5)
	setText(pdf, cInk50)
	pdf.CellFormat(contentW-8, 5, fmt.Sprintf("%s %d  %s %d  %s %d",
		w.pick("期限超過", "overdue"), sum.Overdue,
		w.pick("至急", "urgent"), sum.Urgent,
		w.pick("もうすぐ", "soon"), sum.Soon), "", 1, "L", false, 0, "")
	pdf.SetY(pdf.GetY() + 8)

	for _, g := range timeline.GroupByCategory(items) {
		w.ensureSpace(20)
		w.font("B", 12)
		setText(pdf, cNavy)
		pdf.SetX(marginL)
		pdf.CellFormat(contentW, 7, w.pick(timeline.CategoryLabel(g.Category), string(g.Category)), "", 1, "L", false, 0, "")
		setDraw(pdf, cNavy)
		pdf.SetLineWidth(0.4)
		pdf.Line(marginL, pdf.GetY(), marginL+30, pdf.GetY())
		pdf.SetY(pdf.GetY() + 2)

		for _, it := range g.Items {
			w.row(it)
		}
		pdf.SetY(pdf.GetY() + 4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w writer) row(it timeline.Item) {
	pdf := w.pdf
	w.ensureSpace(14)
	y := pdf.GetY()

	// checkbox
	setDraw(pdf, cInk30)
	pdf.SetLineWidth(0.25)
	pdf.Rect(marginL, y+1, 3.5, 3.5, "D")
	if it.Completed {
		setDraw(pdf, cGreen)
		pdf.SetLineWidth(0.5)
		pdf.Line(marginL+0.5, y+2.8, marginL+1.5, y+4)
		pdf.Line(marginL+1.5, y+4, marginL+3.2, y+1.5)
	}

	pdf.SetXY(marginL+6, y)
	w.font("B", 10)
	setText(pdf, cInk90)
	pdf.CellFormat(contentW-36, 5.5, w.pick(it.Title, it.ID), "", 0, "L", false, 0, "")

	urg := it.Urgency
	label := w.pick(timeline.UrgencyLabel(urg), string(urg))
	if it.Completed {
		label = w.pick("完了", "done")
		urg = timeline.UrgencyFuture
	}
	w.font("B", 8)
	setText(pdf, urgencyColor(urg))
	pdf.CellFormat(30, 5.5, label, "", 1, "R", false, 0, "")

	pdf.SetX(marginL + 6)
	w.font("", 8)
	setText(pdf, cInk50)
	line := dates.Format(it.ScheduledDate)
	if it.DeadlineDate != nil {
		line += w.pick("  期限 ", "  deadline ") + dates.Format(*it.DeadlineDate)
	}
	if w.japanese && it.Location != "" {
		line += "  " + it.Location
	}
	pdf.CellFormat(contentW-6, 4.5, line, "", 1, "L", false, 0, "")

	if w.japanese && len(it.RequiredDocuments) > 0 {
		pdf.SetX(marginL + 6)
		docs := "持ち物: "
		for i, d := range it.RequiredDocuments {
			if i > 0 {
				docs += "、"
			}
			docs += d
		}
		pdf.MultiCell(contentW-6, 4.5, docs, "", "L", false)
	}
	pdf.SetY(pdf.GetY() + 2)
}
