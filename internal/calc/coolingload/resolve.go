package coolingload

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading decimal number of s, the way a browser
// number field is read. Empty or non-numeric text gives 0.
func ParseNumber(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range
		return 0
	}
	return v
}

// Enabled reports whether the section is switched on in f. Sections without
// a toggle are always enabled.
func (f Fields) Enabled(s Section) bool {
	id := s.Toggle()
	if id == "" {
		return true
	}
	return f.Bool(id)
}

func (f Fields) Bool(id string) bool {
	switch v := f[id].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

func (f Fields) Text(id string) string {
	switch v := f[id].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// Number returns the numeric value of id, or 0 when the field is missing,
// not numeric, or belongs to a disabled section.
func (f Fields) Number(id string) float64 {
	if sp, ok := Lookup(id); ok && !f.Enabled(sp.Section) {
		return 0
	}
	switch v := f[id].(type) {
	case string:
		return ParseNumber(v)
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Resolve turns raw form state into a LoadInputs snapshot.
func Resolve(f Fields) LoadInputs {
	in := LoadInputs{
		RoomVolume:      f.Number("roomVolume"),
		TOutside:        f.Number("tOutside"),
		TRoom:           f.Number("tRoom"),
		TGround:         f.Number("tGround"),
		IsGroundFloor:   f.Bool("isGroundFloor"),
		CompressorHours: f.Number("compressorHours"),
		SafetyFactor:    f.Number("safetyFactor"),
	}

	in.Product = ProductInputs{
		Enabled:         f.Enabled(SectionL1),
		State:           ProductState(strings.TrimSpace(f.Text("productState"))),
		CpFresh:         f.Number("cpFresh"),
		CpFrozen:        f.Number("cpFrozen"),
		LatentHeat:      f.Number("latentHeat"),
		T1:              f.Number("t1"),
		T2:              f.Number("t2"),
		Tf:              f.Number("tf"),
		TimeHours:       f.Number("timeL1"),
		OccupiedRatePct: f.Number("occupiedRate"),
		StoringRatePct:  f.Number("storingRate"),
	}

	in.Envelope.Enabled = f.Enabled(SectionL2)
	for i, d := range Directions {
		in.Envelope.Rows[i] = EnvelopeRow{
			U:       f.Number(UField(d)),
			Area:    f.Number(AreaField(d)),
			DtSolar: f.Number(DtSolarField(d)),
		}
	}

	in.AirChange = AirChangeInputs{
		Enabled:          f.Enabled(SectionL3),
		DensityOutside:   f.Number("densityOutside"),
		AirChangesPerDay: f.Number("airChanges"),
		EnthalpyOutside:  f.Number("enthalpyOut"),
		EnthalpyRoom:     f.Number("enthalpyRoom"),
	}
	in.Respiration = RespirationInputs{
		Enabled:      f.Enabled(SectionL4),
		QRespiration: f.Number("qRespiration"),
	}
	in.Workers = WorkerInputs{
		Enabled:       f.Enabled(SectionL5),
		Count:         f.Number("numWorkers"),
		HeatPerWorker: f.Number("heatPerWorker"),
		Hours:         f.Number("workerHours"),
	}
	in.Lighting = LightingInputs{
		Enabled:   f.Enabled(SectionL6),
		Intensity: f.Number("lightIntensity"),
		Hours:     f.Number("lightHours"),
	}
	in.Machine = MachineInputs{
		Enabled: f.Enabled(SectionL7),
		PowerKW: f.Number("machinePower"),
	}
	in.Heating = HeatingInputs{Enabled: f.Enabled(SectionL8)}
	return in
}
