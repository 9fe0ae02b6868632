package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"tripwise/models"
	"tripwise/utils"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 7.0
	// A new page starts once the running offset passes pageHeight - pdfBottomGap.
	pdfBottomGap = 40.0
	pdfQRSize    = 28.0
)

// planDoc is a gofpdf document with a running y offset and manual
// pagination. All text goes through the cp1252 translator used by the core
// fonts.
type planDoc struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	pageH    float64
	maxWidth float64
}

func newPlanDoc(subtitle string) *planDoc {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)

	pageW, pageH := pdf.GetPageSize()
	d := &planDoc{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		pageH:    pageH,
		maxWidth: pageW - 2*pdfMargin,
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-22)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.3)
		pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8,
			d.tr(fmt.Sprintf("Generated by Tripwise · Prices are estimates · Page %d", pdf.PageNo())),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Header bar
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, pageW, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(pdfMargin, 8)
	pdf.CellFormat(100, 10, "Tripwise", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(pdfMargin, 18)
	pdf.CellFormat(d.maxWidth, 6, d.tr(subtitle), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)
	return d
}

func (d *planDoc) ensurePage() {
	if d.pdf.GetY() > d.pageH-pdfBottomGap {
		d.pdf.AddPage()
		d.pdf.SetY(pdfMargin)
	}
}

// lines writes text wrapped to the remaining width at indent, one line per
// lineHeight, checking pagination before each line.
func (d *planDoc) lines(text string, indent, lineHeight float64) {
	width := d.maxWidth - indent
	for _, line := range d.pdf.SplitLines([]byte(d.tr(text)), width) {
		d.ensurePage()
		d.pdf.SetX(pdfMargin + indent)
		d.pdf.CellFormat(width, lineHeight, string(line), "", 1, "L", false, 0, "")
	}
}

func (d *planDoc) title(text string) {
	d.pdf.SetFont("Helvetica", "B", 20)
	d.pdf.SetTextColor(44, 62, 80)
	d.lines(text, 0, 10)
	d.pdf.Ln(4)
}

func (d *planDoc) sectionHeader(title string) {
	d.ensurePage()
	d.pdf.SetFillColor(13, 24, 37)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(d.maxWidth, 8, d.tr("  "+title), "", 1, "L", true, 0, "")
	d.pdf.SetTextColor(44, 62, 80)
	d.pdf.Ln(2)
}

func (d *planDoc) subheading(text string, indent float64) {
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.SetTextColor(52, 73, 94)
	d.lines(text, indent, pdfLineHeight)
	d.body()
}

func (d *planDoc) body() {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(44, 62, 80)
}

func (d *planDoc) row(label, value string) {
	d.ensurePage()
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(100, 100, 100)
	d.pdf.CellFormat(40, pdfLineHeight, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.SetFont("Helvetica", "B", 10)
	for i, line := range d.pdf.SplitLines([]byte(d.tr(value)), d.maxWidth-40) {
		if i > 0 {
			d.ensurePage()
			d.pdf.SetX(pdfMargin + 40)
		}
		d.pdf.CellFormat(d.maxWidth-40, pdfLineHeight, string(line), "", 1, "L", false, 0, "")
	}
	if strings.TrimSpace(value) == "" {
		d.pdf.Ln(pdfLineHeight)
	}
}

func (d *planDoc) bullets(items []string, indent float64) {
	for _, item := range items {
		d.lines("• "+item, indent, pdfLineHeight)
	}
}

// qr places a booking-link QR code at the right edge of the current line.
func (d *planDoc) qr(name, link string) error {
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("QR code generation failed: %w", err)
	}
	if d.pdf.GetY()+pdfQRSize > d.pageH-pdfBottomGap {
		d.pdf.AddPage()
		d.pdf.SetY(pdfMargin)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	y := d.pdf.GetY()
	d.pdf.ImageOptions(name, pdfMargin+d.maxWidth-pdfQRSize, y, pdfQRSize, pdfQRSize, false, opts, 0, link)
	return nil
}

func (d *planDoc) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPlanPDF lays out the full plan: title, overview, preparation, each
// day, transportation, flights and recommendations, in that order.
func RenderPlanPDF(plan models.TravelPlan) ([]byte, error) {
	d, err := renderPlan(plan)
	if err != nil {
		return nil, err
	}
	return d.output()
}

func renderPlan(plan models.TravelPlan) (*planDoc, error) {
	d := newPlanDoc("Travel Plan")
	pdf := d.pdf

	title := plan.Summary.Title
	if title == "" {
		title = plan.Destination
	}
	d.title(title)

	d.sectionHeader("Trip Overview")
	if plan.Source != "" || plan.Destination != "" {
		d.row("Route", fmt.Sprintf("%s - %s", plan.Source, plan.Destination))
	}
	d.row("Dates", plan.Summary.Dates)
	if plan.StartDate != nil {
		d.row("Departure", fmtDateReadable(plan.StartDate.String()))
	}
	d.row("Travelers", plan.Summary.Travelers)
	d.row("Budget", plan.Summary.TotalBudget)
	d.row("Interests", strings.Join(plan.Summary.Interests, ", "))
	pdf.Ln(6)

	d.sectionHeader("Preparation")
	d.subheading("Packing List:", 5)
	d.bullets(plan.Preparation.PackingList, 10)
	pdf.Ln(3)
	d.subheading("Cultural Tips:", 5)
	for _, label := range SortedTipLabels(plan.Preparation.CulturalTips) {
		d.lines(fmt.Sprintf("• %s: %s", label, plan.Preparation.CulturalTips[label]), 10, pdfLineHeight)
	}
	pdf.Ln(6)

	if len(plan.Days) > 0 {
		d.sectionHeader("Daily Itinerary")
	}
	for _, day := range plan.Days {
		d.ensurePage()
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(52, 73, 94)
		d.lines(fmt.Sprintf("Day %d - %s", day.Day, day.Title), 0, 9)
		if day.Date != "" {
			d.body()
			d.lines(fmtDateReadable(day.Date), 0, pdfLineHeight)
		}
		d.body()
		for _, a := range day.Activities {
			d.lines(fmt.Sprintf("%s: %s", a.Time, a.Description), 5, pdfLineHeight)
			if a.Cost != "" {
				d.lines("Cost: "+a.Cost, 10, pdfLineHeight)
			}
			if a.Notes != "" {
				d.lines("Notes: "+a.Notes, 10, pdfLineHeight)
			}
		}
		pdf.Ln(4)
	}

	if len(plan.Transportation.BetweenCities)+len(plan.Transportation.LocalTransport) > 0 {
		d.sectionHeader("Transportation")
		for _, group := range []struct {
			label    string
			segments []models.TransportSegment
		}{
			{"Between Cities:", plan.Transportation.BetweenCities},
			{"Local Transport:", plan.Transportation.LocalTransport},
		} {
			if len(group.segments) == 0 {
				continue
			}
			d.subheading(group.label, 5)
			for _, t := range group.segments {
				d.lines(fmt.Sprintf("%s: %s", t.Type, t.Details), 5, pdfLineHeight)
				if t.Cost != "" {
					d.lines("Cost: "+t.Cost, 10, pdfLineHeight)
				}
			}
		}
		pdf.Ln(6)
	}

	if len(plan.Flights) > 0 {
		d.sectionHeader("Flight Options")
		for i, option := range plan.Flights {
			if err := d.flightOption(i, option); err != nil {
				return nil, err
			}
		}
		pdf.Ln(4)
	}

	d.sectionHeader("Recommendations")
	d.subheading("Restaurants:", 5)
	d.bullets(plan.Recommendations.Restaurants, 10)
	pdf.Ln(3)
	d.subheading("Booking Advice:", 5)
	d.bullets(plan.Recommendations.BookingAdvice, 10)
	if plan.Budget.TotalEstimatedCost != "" {
		pdf.Ln(3)
		d.row("Estimated total", plan.Budget.TotalEstimatedCost)
		if plan.Budget.Note != "" {
			d.lines(plan.Budget.Note, 0, pdfLineHeight)
		}
	}
	return d, nil
}

func (d *planDoc) flightOption(i int, option models.FlightOption) error {
	link := option.BookingURL()
	top := d.pdf.GetY()
	if link != "" && top+pdfQRSize > d.pageH-pdfBottomGap {
		d.pdf.AddPage()
		d.pdf.SetY(pdfMargin)
		top = d.pdf.GetY()
	}

	d.subheading(fmt.Sprintf("Option %d - $%.0f", i+1, option.Price), 5)
	for _, leg := range option.Flights {
		d.lines(formatFlightLeg(leg), 10, pdfLineHeight)
	}
	var facts []string
	if option.TotalDuration > 0 {
		facts = append(facts, formatMinutes(option.TotalDuration))
	}
	if n := len(option.Layovers); n > 0 {
		facts = append(facts, fmt.Sprintf("%d stop(s)", n))
	} else {
		facts = append(facts, "Direct")
	}
	if option.CarbonEmissions.ThisFlight > 0 {
		facts = append(facts, fmt.Sprintf("%d kg CO2 (%+d%% vs typical)",
			option.CarbonEmissions.ThisFlight/1000, option.CarbonEmissions.DifferencePercent))
	}
	d.lines(strings.Join(facts, " · "), 10, pdfLineHeight)

	if link != "" {
		d.pdf.SetY(top)
		if err := d.qr(fmt.Sprintf("booking-qr-%d", i), link); err != nil {
			return err
		}
		if bottom := top + pdfQRSize + 2; d.pdf.GetY() < bottom {
			d.pdf.SetY(bottom)
		}
	}
	d.pdf.Ln(2)
	return nil
}

// RenderSummaryPDF is the one-page overview offered for saved plans.
func RenderSummaryPDF(saved models.SavedPlan) ([]byte, error) {
	plan := saved.Plan
	d := newPlanDoc("Saved Plan Summary")

	title := plan.Summary.Title
	if title == "" {
		title = plan.Destination
	}
	d.title(title)

	d.sectionHeader("Summary")
	d.row("Destination", plan.Destination)
	d.row("Dates", plan.Summary.Dates)
	d.row("Travelers", plan.Summary.Travelers)
	d.row("Budget", plan.Summary.TotalBudget)
	d.row("Interests", strings.Join(plan.Summary.Interests, ", "))
	if len(plan.Days) > 0 {
		d.row("Days planned", fmt.Sprint(len(plan.Days)))
	}
	if !saved.SavedAt.IsZero() {
		d.row("Saved", saved.SavedAt.UTC().Format("02 Jan 2006, 15:04 UTC"))
	}
	return d.output()
}

// PDFFilename is the download name for a full plan export.
func PDFFilename(plan models.TravelPlan) string {
	slug := utils.Slugify(plan.Destination)
	if slug == "" {
		return "travel-plan.pdf"
	}
	return slug + "-travel-plan.pdf"
}

// SummaryPDFFilename is the download name for a saved-plan summary.
func SummaryPDFFilename(plan models.TravelPlan) string {
	name := plan.Summary.Title
	if name == "" {
		name = plan.Destination
	}
	if strings.TrimSpace(name) == "" {
		name = "travel-plan"
	}
	return utils.Slugify(name) + "-summary.pdf"
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse(models.DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}

// formatFlightLeg prefers airport records and falls back to the flat
// departure/arrival fields carried by itinerary-derived options.
func formatFlightLeg(leg models.FlightLeg) string {
	carrier := strings.TrimSpace(leg.Airline + " " + leg.FlightNumber)
	if leg.DepartureAirport != nil && leg.ArrivalAirport != nil {
		s := fmt.Sprintf("%s: %s %s - %s %s", carrier,
			leg.DepartureAirport.ID, leg.DepartureAirport.Time,
			leg.ArrivalAirport.ID, leg.ArrivalAirport.Time)
		if leg.Duration > 0 {
			s += " (" + formatMinutes(leg.Duration) + ")"
		}
		return s
	}
	if leg.Departure != "" && leg.Arrival != "" {
		return fmt.Sprintf("%s: %s - %s", carrier, leg.Departure, leg.Arrival)
	}
	if carrier == "" {
		return "N/A"
	}
	return carrier
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}
