package report

import (
	"fmt"
	"io"
	"time"

	coolingload "Frostline/internal/calc/coolingload"
	"github.com/phpdave11/gofpdf"
)

const PDFFileName = "Cooling_Load_Summary.pdf"

var componentNames = [8]string{
	"L1 - Product Load",
	"L2 - Transmission Load",
	"L3 - Air Change Load",
	"L4 - Respiration Load",
	"L5 - Workers Load",
	"L6 - Lighting Load",
	"L7 - Machine Load",
	"L8 - Heating Load",
}

var componentSections = [8]coolingload.Section{
	coolingload.SectionL1, coolingload.SectionL2, coolingload.SectionL3, coolingload.SectionL4,
	coolingload.SectionL5, coolingload.SectionL6, coolingload.SectionL7, coolingload.SectionL8,
}

// WritePDF renders a one page summary of the breakdown.
func WritePDF(w io.Writer, fields coolingload.Fields, now time.Time) error {
	res := coolingload.Evaluate(fields)
	bd := res.Breakdown

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Cooling Load Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Place: %s", fields.Text("placeName"))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Freon: %s", fields.Text("freonType"))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Room: %.2f m³ at %.1f °C, outside %.1f °C",
		res.Inputs.RoomVolume, res.Inputs.TRoom, res.Inputs.TOutside)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 7, "Component", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Load", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, v := range bd.Components() {
		val := coolingload.KW(v)
		if !fields.Enabled(componentSections[i]) {
			val = "Excluded"
		}
		pdf.CellFormat(110, 7, componentNames[i], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, val, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 7, "Total Load (L_TOT)", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, coolingload.KW(bd.TotalLoad), "1", 1, "R", false, 0, "")
	pdf.CellFormat(110, 7, "Required Capacity (RC)", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, coolingload.KW(bd.RequiredCapacity), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("Compressor working hours: %g h, safety factor: %g.",
		res.Inputs.CompressorHours, res.Inputs.SafetyFactor), "", "L", false)

	return pdf.Output(w)
}
