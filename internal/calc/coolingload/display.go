package coolingload

import "fmt"

type EnvelopeRowDisplay struct {
	Direction Direction `json:"direction"`
	DtTotal   string    `json:"dt_total"`
	HeatGain  string    `json:"heat_gain"`
}

// Display is the on-screen rendering of a breakdown.
type Display struct {
	L1               string                `json:"l1"`
	L2               string                `json:"l2"`
	L3               string                `json:"l3"`
	L4               string                `json:"l4"`
	L5               string                `json:"l5"`
	L6               string                `json:"l6"`
	L7               string                `json:"l7"`
	L8               string                `json:"l8"`
	TotalLoad        string                `json:"total_load"`
	RequiredCapacity string                `json:"required_capacity"`
	Envelope         [6]EnvelopeRowDisplay `json:"envelope"`
	TotalHeatGain    string                `json:"total_heat_gain"`
}

// KW formats a load in kilowatts with three decimals.
func KW(v float64) string {
	return fmt.Sprintf("%.3f kW", v)
}

// Format renders b for display. envelopeEnabled controls whether the L2 rows
// show numbers or "-".
func Format(b LoadBreakdown, envelopeEnabled bool) Display {
	d := Display{
		L1:               KW(b.L1),
		L2:               KW(b.L2),
		L3:               KW(b.L3),
		L4:               KW(b.L4),
		L5:               KW(b.L5),
		L6:               KW(b.L6),
		L7:               KW(b.L7),
		L8:               KW(b.L8),
		TotalLoad:        KW(b.TotalLoad),
		RequiredCapacity: KW(b.RequiredCapacity),
		TotalHeatGain:    "-",
	}
	for i, row := range b.Envelope {
		d.Envelope[i] = EnvelopeRowDisplay{Direction: row.Direction, DtTotal: "-", HeatGain: "-"}
		if envelopeEnabled {
			d.Envelope[i].DtTotal = fmt.Sprintf("%.2f", row.DtTotal)
			d.Envelope[i].HeatGain = fmt.Sprintf("%.2f", row.HeatGainW)
		}
	}
	if envelopeEnabled {
		d.TotalHeatGain = fmt.Sprintf("%.2f W", b.TotalHeatGainW)
	}
	return d
}
