package coolingload

import "math"

type ProductState string

const (
	Fresh             ProductState = "1" // fresh, stored fresh
	FreshStoredFrozen ProductState = "2" // fresh, stored frozen
	Frozen            ProductState = "3" // frozen, stored frozen
)

func (s ProductState) Label() string {
	switch s {
	case Fresh:
		return "Fresh & Stored Fresh"
	case FreshStoredFrozen:
		return "Fresh & Stored Frozen"
	case Frozen:
		return "Frozen & Stored Frozen"
	}
	return string(s)
}

const (
	densityFresh  = 500.0 // kg/m3
	densityFrozen = 650.0 // kg/m3

	machineFactor   = 0.7
	floorHeatingWm2 = 5.0
)

type ProductInputs struct {
	Enabled         bool         `json:"enabled"`
	State           ProductState `json:"state"`
	CpFresh         float64      `json:"cp_fresh"`
	CpFrozen        float64      `json:"cp_frozen"`
	LatentHeat      float64      `json:"latent_heat"`
	T1              float64      `json:"t1"`
	T2              float64      `json:"t2"`
	Tf              float64      `json:"tf"`
	TimeHours       float64      `json:"time_hours"`
	OccupiedRatePct float64      `json:"occupied_rate_pct"`
	StoringRatePct  float64      `json:"storing_rate_pct"`
}

type EnvelopeRow struct {
	U       float64 `json:"u"`
	Area    float64 `json:"area"`
	DtSolar float64 `json:"dt_solar"`
}

type EnvelopeInputs struct {
	Enabled bool `json:"enabled"`
	// Rows follow Directions order.
	Rows [6]EnvelopeRow `json:"rows"`
}

type AirChangeInputs struct {
	Enabled          bool    `json:"enabled"`
	DensityOutside   float64 `json:"density_outside"`
	AirChangesPerDay float64 `json:"air_changes_per_day"`
	EnthalpyOutside  float64 `json:"enthalpy_outside"`
	EnthalpyRoom     float64 `json:"enthalpy_room"`
}

type RespirationInputs struct {
	Enabled      bool    `json:"enabled"`
	QRespiration float64 `json:"q_respiration"`
}

type WorkerInputs struct {
	Enabled       bool    `json:"enabled"`
	Count         float64 `json:"count"`
	HeatPerWorker float64 `json:"heat_per_worker"`
	Hours         float64 `json:"hours"`
}

type LightingInputs struct {
	Enabled   bool    `json:"enabled"`
	Intensity float64 `json:"intensity"`
	Hours     float64 `json:"hours"`
}

type MachineInputs struct {
	Enabled bool    `json:"enabled"`
	PowerKW float64 `json:"power_kw"`
}

type HeatingInputs struct {
	Enabled bool `json:"enabled"`
}

// LoadInputs is one snapshot of the room parameters.
type LoadInputs struct {
	RoomVolume    float64 `json:"room_volume"`
	TOutside      float64 `json:"t_outside"`
	TRoom         float64 `json:"t_room"`
	TGround       float64 `json:"t_ground"`
	IsGroundFloor bool    `json:"is_ground_floor"`

	Product     ProductInputs     `json:"product"`
	Envelope    EnvelopeInputs    `json:"envelope"`
	AirChange   AirChangeInputs   `json:"air_change"`
	Respiration RespirationInputs `json:"respiration"`
	Workers     WorkerInputs      `json:"workers"`
	Lighting    LightingInputs    `json:"lighting"`
	Machine     MachineInputs     `json:"machine"`
	Heating     HeatingInputs     `json:"heating"`

	CompressorHours float64 `json:"compressor_hours"`
	SafetyFactor    float64 `json:"safety_factor"`
}

// Effective returns a copy in which every input of a disabled section is
// zero. The product state survives since L8 reads it independently of L1.
func (in LoadInputs) Effective() LoadInputs {
	out := in
	if !in.Product.Enabled {
		out.Product = ProductInputs{State: in.Product.State}
	}
	if !in.Envelope.Enabled {
		out.Envelope = EnvelopeInputs{}
	}
	if !in.AirChange.Enabled {
		out.AirChange = AirChangeInputs{}
	}
	if !in.Respiration.Enabled {
		out.Respiration = RespirationInputs{}
	}
	if !in.Workers.Enabled {
		out.Workers = WorkerInputs{}
	}
	if !in.Lighting.Enabled {
		out.Lighting = LightingInputs{}
	}
	if !in.Machine.Enabled {
		out.Machine = MachineInputs{}
	}
	return out
}

type EnvelopeRowResult struct {
	Direction Direction `json:"direction"`
	DtTotal   float64   `json:"dt_total"`
	HeatGainW float64   `json:"heat_gain_w"`
}

// LoadBreakdown holds raw results in kW. Density, Mass and FloorArea are the
// values carried between sections (L1 -> L4, L2 -> L6/L8).
type LoadBreakdown struct {
	L1 float64 `json:"l1"`
	L2 float64 `json:"l2"`
	L3 float64 `json:"l3"`
	L4 float64 `json:"l4"`
	L5 float64 `json:"l5"`
	L6 float64 `json:"l6"`
	L7 float64 `json:"l7"`
	L8 float64 `json:"l8"`

	TotalLoad        float64 `json:"total_load"`
	RequiredCapacity float64 `json:"required_capacity"`

	Density   float64 `json:"density"`
	Mass      float64 `json:"mass"`
	FloorArea float64 `json:"floor_area"`

	Envelope       [6]EnvelopeRowResult `json:"envelope"`
	TotalHeatGainW float64              `json:"total_heat_gain_w"`
}

// Components returns L1..L8 in order.
func (b LoadBreakdown) Components() [8]float64 {
	return [8]float64{b.L1, b.L2, b.L3, b.L4, b.L5, b.L6, b.L7, b.L8}
}

// ProductDensity maps the product state to a bulk storage density.
// Both fresh-loaded states use the fresh density.
func ProductDensity(s ProductState) float64 {
	if s == Fresh || s == FreshStoredFrozen {
		return densityFresh
	}
	return densityFrozen
}

// Calculate evaluates all eight load components for one snapshot.
func Calculate(raw LoadInputs) LoadBreakdown {
	in := raw.Effective()
	var b LoadBreakdown
	for i, d := range Directions {
		b.Envelope[i].Direction = d
	}

	if in.Product.Enabled {
		b.Density = ProductDensity(in.Product.State)
		b.Mass = productMass(in.Product, b.Density, in.RoomVolume)
		b.L1 = productLoad(in.Product, b.Mass)
	}

	if in.Envelope.Enabled {
		b.FloorArea = in.Envelope.Rows[len(Directions)-1].Area
		for i, d := range Directions {
			row := in.Envelope.Rows[i]
			dt := row.DtSolar + (in.TOutside - in.TRoom)
			if d == Floor && in.IsGroundFloor {
				dt = row.DtSolar + (in.TGround - in.TRoom)
			}
			q := row.U * row.Area * dt
			b.Envelope[i].DtTotal = dt
			b.Envelope[i].HeatGainW = q
			b.TotalHeatGainW += q
		}
		b.L2 = b.TotalHeatGainW * 1e-3
	}

	if in.AirChange.Enabled {
		ac := in.AirChange
		b.L3 = ac.DensityOutside * (ac.AirChangesPerDay * in.RoomVolume / (24 * 3600)) * (ac.EnthalpyOutside - ac.EnthalpyRoom)
	}

	if in.Respiration.Enabled {
		b.L4 = b.Mass * in.Respiration.QRespiration * 1e-3
	}

	if in.Workers.Enabled {
		w := in.Workers
		b.L5 = w.Count * w.HeatPerWorker * (w.Hours / 24) * 1e-3
	}

	if in.Lighting.Enabled {
		b.L6 = in.Lighting.Intensity * b.FloorArea * (in.Lighting.Hours / 24) * 1e-3
	}

	if in.Machine.Enabled {
		b.L7 = machineFactor * in.Machine.PowerKW
	}

	if in.Heating.Enabled && in.IsGroundFloor && in.Product.State != Fresh {
		b.L8 = floorHeatingWm2 * b.FloorArea * 1e-3
	}

	b.sanitize()

	for _, l := range b.Components() {
		b.TotalLoad += l
	}
	zeroIfNotFinite(&b.TotalLoad)
	if in.CompressorHours > 0 {
		b.RequiredCapacity = b.TotalLoad * in.SafetyFactor * (24 / in.CompressorHours)
		zeroIfNotFinite(&b.RequiredCapacity)
	}
	return b
}

func productMass(p ProductInputs, density, roomVolume float64) float64 {
	return (p.OccupiedRatePct / 100) * (p.StoringRatePct / 100) * density * roomVolume
}

func productLoad(p ProductInputs, mass float64) float64 {
	if p.TimeHours <= 0 {
		return 0
	}
	rate := mass / (p.TimeHours * 3600)
	switch p.State {
	case Fresh:
		return rate * p.CpFresh * (p.T1 - p.T2)
	case FreshStoredFrozen:
		return rate * (p.CpFresh*(p.T1-p.Tf) + p.LatentHeat + p.CpFrozen*(p.Tf-p.T2))
	case Frozen:
		return rate * p.CpFrozen * (p.T1 - p.T2)
	}
	return 0
}

// sanitize zeroes any NaN or Inf that extreme inputs can produce so every
// component stays finite. The total and RC are checked after summing.
func (b *LoadBreakdown) sanitize() {
	for _, v := range []*float64{&b.L1, &b.L2, &b.L3, &b.L4, &b.L5, &b.L6, &b.L7, &b.L8, &b.Mass, &b.TotalHeatGainW} {
		zeroIfNotFinite(v)
	}
	for i := range b.Envelope {
		zeroIfNotFinite(&b.Envelope[i].DtTotal)
		zeroIfNotFinite(&b.Envelope[i].HeatGainW)
	}
}

func zeroIfNotFinite(v *float64) {
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		*v = 0
	}
}
