package coolingload

// Fields is the raw form state: field id -> string for text, numeric and
// select inputs, bool for checkboxes.
type Fields map[string]any

// Section groups fields under one toggle: general room data, L1..L8 and
// the plant parameters.
type Section int

const (
	SectionGeneral Section = iota
	SectionL1
	SectionL2
	SectionL3
	SectionL4
	SectionL5
	SectionL6
	SectionL7
	SectionL8
	SectionPlant
)

// Toggle returns the checkbox id that enables the section, or "" for
// sections that are always on.
func (s Section) Toggle() string {
	switch s {
	case SectionL1:
		return "toggleL1"
	case SectionL2:
		return "toggleL2"
	case SectionL3:
		return "toggleL3"
	case SectionL4:
		return "toggleL4"
	case SectionL5:
		return "toggleL5"
	case SectionL6:
		return "toggleL6"
	case SectionL7:
		return "toggleL7"
	case SectionL8:
		return "toggleL8"
	}
	return ""
}

// FieldKind is the form control a field is read from.
type FieldKind int

const (
	KindNumber FieldKind = iota
	KindText
	KindSelect
	KindCheckbox
)

// FieldSpec is one catalog entry.
type FieldSpec struct {
	ID      string
	Section Section
	Kind    FieldKind
}

// Direction names one envelope row.
type Direction string

const (
	North   Direction = "north"
	South   Direction = "south"
	East    Direction = "east"
	West    Direction = "west"
	Ceiling Direction = "ceiling"
	Floor   Direction = "floor"
)

// Directions is the fixed envelope row order.
var Directions = [6]Direction{North, South, East, West, Ceiling, Floor}

func (d Direction) Label() string {
	switch d {
	case North:
		return "North Wall"
	case South:
		return "South Wall"
	case East:
		return "East Wall"
	case West:
		return "West Wall"
	case Ceiling:
		return "Ceiling"
	case Floor:
		return "Floor"
	}
	return string(d)
}

// Envelope row field ids look like "uNorth", "areaFloor", "dtSolarCeiling".
func UField(d Direction) string       { return "u" + capitalize(d) }
func AreaField(d Direction) string    { return "area" + capitalize(d) }
func DtSolarField(d Direction) string { return "dtSolar" + capitalize(d) }

func capitalize(d Direction) string {
	s := string(d)
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

var catalog = buildCatalog()

func buildCatalog() map[string]FieldSpec {
	specs := []FieldSpec{
		{"placeName", SectionGeneral, KindText},
		{"freonType", SectionGeneral, KindText},
		{"roomVolume", SectionGeneral, KindNumber},
		{"tOutside", SectionGeneral, KindNumber},
		{"tWetBulb", SectionGeneral, KindNumber},
		{"tRoom", SectionGeneral, KindNumber},
		{"tGround", SectionGeneral, KindNumber},
		{"isGroundFloor", SectionGeneral, KindCheckbox},

		{"productName", SectionL1, KindText},
		{"productState", SectionL1, KindSelect},
		{"cpFresh", SectionL1, KindNumber},
		{"cpFrozen", SectionL1, KindNumber},
		{"latentHeat", SectionL1, KindNumber},
		{"t1", SectionL1, KindNumber},
		{"t2", SectionL1, KindNumber},
		{"tf", SectionL1, KindNumber},
		{"timeL1", SectionL1, KindNumber},
		{"occupiedRate", SectionL1, KindNumber},
		{"storingRate", SectionL1, KindNumber},

		{"densityOutside", SectionL3, KindNumber},
		{"airChanges", SectionL3, KindNumber},
		{"enthalpyOut", SectionL3, KindNumber},
		{"enthalpyRoom", SectionL3, KindNumber},

		{"qRespiration", SectionL4, KindNumber},

		{"numWorkers", SectionL5, KindNumber},
		{"heatPerWorker", SectionL5, KindNumber},
		{"workerHours", SectionL5, KindNumber},

		{"lightIntensity", SectionL6, KindNumber},
		{"lightHours", SectionL6, KindNumber},

		{"machinePower", SectionL7, KindNumber},

		{"compressorHours", SectionPlant, KindNumber},
		{"safetyFactor", SectionPlant, KindNumber},
	}
	for _, d := range Directions {
		specs = append(specs,
			FieldSpec{UField(d), SectionL2, KindNumber},
			FieldSpec{AreaField(d), SectionL2, KindNumber},
			FieldSpec{DtSolarField(d), SectionL2, KindNumber},
		)
	}
	for s := SectionL1; s <= SectionL8; s++ {
		specs = append(specs, FieldSpec{s.Toggle(), SectionGeneral, KindCheckbox})
	}

	m := make(map[string]FieldSpec, len(specs))
	for _, sp := range specs {
		m[sp.ID] = sp
	}
	return m
}

// Lookup returns the catalog entry of a known field id.
func Lookup(id string) (FieldSpec, bool) {
	sp, ok := catalog[id]
	return sp, ok
}

// FieldIDs returns every known field id.
func FieldIDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	return ids
}
