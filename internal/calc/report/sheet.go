package report

import (
	"fmt"
	"strings"

	coolingload "Frostline/internal/calc/coolingload"
)

const SheetName = "Detailed Report"

// ColumnWidths are the widths of columns A..F.
var ColumnWidths = []float64{30, 15, 15, 25, 15, 15}

// Row is one spreadsheet row. Header marks section titles.
type Row struct {
	Cells  []any
	Header bool
}

type builder struct {
	rows []Row
}

func (b *builder) header(title string) {
	b.rows = append(b.rows,
		Row{Cells: []any{""}},
		Row{Cells: []any{strings.ToUpper(title)}, Header: true},
		Row{Cells: []any{"Parameter", "Value", "Unit", "Notes"}, Header: true},
	)
}

func (b *builder) row(param string, val any, extra ...string) {
	cells := []any{param, val}
	for _, e := range extra {
		cells = append(cells, e)
	}
	b.rows = append(b.rows, Row{Cells: cells})
}

func (b *builder) excluded() {
	b.row("Status", "Excluded")
}

// Rows lays out the detailed report for the given form state.
func Rows(f coolingload.Fields) []Row {
	res := coolingload.Evaluate(f)
	bd, disp := res.Breakdown, res.Display
	b := &builder{}

	b.header("1. General Information")
	b.row("Place Name", f.Text("placeName"))
	b.row("Freon Type", f.Text("freonType"))
	b.row("Room Volume", f.Number("roomVolume"), "m³")
	b.row("T_Outside", f.Number("tOutside"), "°C")
	b.row("T_Wet Bulb", f.Number("tWetBulb"), "°C")
	b.row("T_Room", f.Number("tRoom"), "°C")
	b.row("T_Ground", f.Number("tGround"), "°C")
	b.row("Ground Floor", yesNo(f.Bool("isGroundFloor")))

	b.header("2. L1 - Product Load")
	if f.Enabled(coolingload.SectionL1) {
		state := res.Inputs.Product.State
		b.row("Product Name", f.Text("productName"))
		b.row("Product State", state.Label())
		b.row("cp_fresh", f.Number("cpFresh"), "kJ/kg.K")
		b.row("cp_frozen", f.Number("cpFrozen"), "kJ/kg.K")
		b.row("Latent Heat", f.Number("latentHeat"), "kJ/kg")
		b.row("T1", f.Number("t1"), "°C")
		b.row("T2", f.Number("t2"), "°C")
		b.row("Tf (Freezing Point)", f.Number("tf"), "°C")
		b.row("Time", f.Number("timeL1"), "hr")
		b.row("Occupied Volume Rate", f.Number("occupiedRate"), "%")
		b.row("Storing Rate", f.Number("storingRate"), "%")
		b.row("Calculated Mass", fmt.Sprintf("%.2f", bd.Mass), "kg", fmt.Sprintf("Density used: %g kg/m³", bd.Density))
		b.row("L1 Result", disp.L1, "")
	} else {
		b.excluded()
	}

	b.header("3. L2 - Transmission Load")
	if f.Enabled(coolingload.SectionL2) {
		b.rows = append(b.rows, Row{
			Cells:  []any{"Direction", "U (W/m².K)", "Area (m²)", "DT_solar", "DT_total", "Q (W)"},
			Header: true,
		})
		for i, d := range coolingload.Directions {
			b.rows = append(b.rows, Row{Cells: []any{
				d.Label(),
				f.Text(coolingload.UField(d)),
				f.Text(coolingload.AreaField(d)),
				f.Text(coolingload.DtSolarField(d)),
				disp.Envelope[i].DtTotal,
				disp.Envelope[i].HeatGain,
			}})
		}
		b.row("Total Heat Gain (Q)", disp.TotalHeatGain)
		b.row("L2 Result", disp.L2)
	} else {
		b.excluded()
	}

	b.header("4. L3 - Air Change Load")
	if f.Enabled(coolingload.SectionL3) {
		b.row("Density Outside", f.Number("densityOutside"), "kg/m³")
		b.row("Air Changes per Day", f.Number("airChanges"))
		b.row("Enthalpy Outside (Io)", f.Number("enthalpyOut"), "kJ/kg")
		b.row("Enthalpy Room (Ir)", f.Number("enthalpyRoom"), "kJ/kg")
		b.row("L3 Result", disp.L3)
	} else {
		b.excluded()
	}

	b.header("5. L4 - Respiration Load")
	if f.Enabled(coolingload.SectionL4) {
		b.row("Q_respiration", f.Number("qRespiration"), "W/kg")
		b.row("L4 Result", disp.L4)
	} else {
		b.excluded()
	}

	b.header("6. L5 - Workers Load")
	if f.Enabled(coolingload.SectionL5) {
		b.row("Number of Workers", f.Number("numWorkers"))
		b.row("Heat per Worker", f.Number("heatPerWorker"), "W")
		b.row("Hours in Room", f.Number("workerHours"), "hr")
		b.row("L5 Result", disp.L5)
	} else {
		b.excluded()
	}

	b.header("7. L6 - Lighting Load")
	if f.Enabled(coolingload.SectionL6) {
		b.row("Light Intensity", f.Number("lightIntensity"), "W/m²")
		b.row("Hours Lighting Used", f.Number("lightHours"), "hr")
		b.row("L6 Result", disp.L6)
	} else {
		b.excluded()
	}

	b.header("8. L7 - Machine Load")
	if f.Enabled(coolingload.SectionL7) {
		b.row("Machine Power", f.Number("machinePower"), "kW")
		b.row("L7 Result", disp.L7)
	} else {
		b.excluded()
	}

	b.header("9. L8 - Heating Load")
	if f.Enabled(coolingload.SectionL8) {
		b.row("L8 Result", disp.L8)
	} else {
		b.excluded()
	}

	b.header("10. Compressor & Safety")
	b.row("Compressor Working Hours", f.Number("compressorHours"), "hr")
	b.row("Safety Factor", f.Number("safetyFactor"))

	b.header("11. Calculation Results")
	b.row("TOTAL LOAD (L_TOT)", disp.TotalLoad)
	b.row("REQUIRED CAPACITY (RC)", disp.RequiredCapacity)

	return b.rows
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
