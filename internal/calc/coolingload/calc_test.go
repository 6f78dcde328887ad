package coolingload

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullRoom enables every section with realistic values.
func fullRoom() LoadInputs {
	in := LoadInputs{
		RoomVolume:    100,
		TOutside:      35,
		TRoom:         -18,
		TGround:       15,
		IsGroundFloor: true,
		Product: ProductInputs{
			Enabled: true, State: FreshStoredFrozen,
			CpFresh: 3.6, CpFrozen: 1.9, LatentHeat: 250,
			T1: 10, T2: -18, Tf: -2, TimeHours: 24,
			OccupiedRatePct: 60, StoringRatePct: 80,
		},
		Envelope:        EnvelopeInputs{Enabled: true},
		AirChange:       AirChangeInputs{Enabled: true, DensityOutside: 1.15, AirChangesPerDay: 6, EnthalpyOutside: 90, EnthalpyRoom: -16},
		Respiration:     RespirationInputs{Enabled: true, QRespiration: 0.05},
		Workers:         WorkerInputs{Enabled: true, Count: 2, HeatPerWorker: 390, Hours: 4},
		Lighting:        LightingInputs{Enabled: true, Intensity: 10, Hours: 4},
		Machine:         MachineInputs{Enabled: true, PowerKW: 1.5},
		Heating:         HeatingInputs{Enabled: true},
		CompressorHours: 18,
		SafetyFactor:    1.1,
	}
	for i := range in.Envelope.Rows {
		in.Envelope.Rows[i] = EnvelopeRow{U: 0.25, Area: 20, DtSolar: 1}
	}
	in.Envelope.Rows[5].Area = 25
	return in
}

func sumOf(b LoadBreakdown) float64 {
	return b.L1 + b.L2 + b.L3 + b.L4 + b.L5 + b.L6 + b.L7 + b.L8
}

func TestEnvelopeNorthRow(t *testing.T) {
	in := LoadInputs{RoomVolume: 100, TOutside: 35, TRoom: -18}
	in.Envelope.Enabled = true
	in.Envelope.Rows[0] = EnvelopeRow{U: 0.3, Area: 50, DtSolar: 2}

	b := Calculate(in)
	assert.Equal(t, North, b.Envelope[0].Direction)
	assert.InDelta(t, 55.0, b.Envelope[0].DtTotal, 1e-12)
	assert.InDelta(t, 825.0, b.Envelope[0].HeatGainW, 1e-9)
	assert.InDelta(t, 825.0, b.TotalHeatGainW, 1e-9)
	assert.InDelta(t, 0.825, b.L2, 1e-12)
}

func TestMachineLoad(t *testing.T) {
	b := Calculate(LoadInputs{Machine: MachineInputs{Enabled: true, PowerKW: 10}})
	assert.Equal(t, 7.0, b.L7)
	assert.Equal(t, 7.0, b.TotalLoad)
}

func TestAllDisabled(t *testing.T) {
	in := fullRoom()
	in.Product.Enabled = false
	in.Envelope.Enabled = false
	in.AirChange.Enabled = false
	in.Respiration.Enabled = false
	in.Workers.Enabled = false
	in.Lighting.Enabled = false
	in.Machine.Enabled = false
	in.Heating.Enabled = false
	in.CompressorHours = 0

	b := Calculate(in)
	assert.Equal(t, [8]float64{}, b.Components())
	assert.Zero(t, b.TotalLoad)
	assert.Zero(t, b.RequiredCapacity)
	assert.Zero(t, b.Mass)
	assert.Zero(t, b.FloorArea)
}

func TestTotalIsExactSum(t *testing.T) {
	b := Calculate(fullRoom())
	for i, l := range b.Components() {
		assert.NotZero(t, l, "L%d", i+1)
	}
	assert.Equal(t, sumOf(b), b.TotalLoad)
}

func TestRequiredCapacity(t *testing.T) {
	in := fullRoom()
	b := Calculate(in)
	assert.Equal(t, b.TotalLoad*in.SafetyFactor*(24/in.CompressorHours), b.RequiredCapacity)

	for _, hours := range []float64{0, -5} {
		in.CompressorHours = hours
		assert.Zero(t, Calculate(in).RequiredCapacity, "hours=%v", hours)
	}
}

func TestDisablingSectionZeroesIt(t *testing.T) {
	disable := map[int]func(*LoadInputs){
		1: func(in *LoadInputs) { in.Product.Enabled = false },
		2: func(in *LoadInputs) { in.Envelope.Enabled = false },
		3: func(in *LoadInputs) { in.AirChange.Enabled = false },
		4: func(in *LoadInputs) { in.Respiration.Enabled = false },
		5: func(in *LoadInputs) { in.Workers.Enabled = false },
		6: func(in *LoadInputs) { in.Lighting.Enabled = false },
		7: func(in *LoadInputs) { in.Machine.Enabled = false },
		8: func(in *LoadInputs) { in.Heating.Enabled = false },
	}
	full := Calculate(fullRoom())
	for n, off := range disable {
		in := fullRoom()
		off(&in)
		b := Calculate(in)
		assert.Zero(t, b.Components()[n-1], "L%d", n)
		assert.Equal(t, sumOf(b), b.TotalLoad)
		assert.Less(t, b.TotalLoad, full.TotalLoad, "L%d", n)
	}
}

func TestDisabledSectionMatchesOmittedSection(t *testing.T) {
	in := fullRoom()
	in.AirChange.Enabled = false
	in.Workers.Enabled = false

	omitted := in
	omitted.AirChange = AirChangeInputs{}
	omitted.Workers = WorkerInputs{}

	assert.Equal(t, Calculate(omitted), Calculate(in))
}

func TestProductDisabledForcesRespirationZero(t *testing.T) {
	in := fullRoom()
	in.Product.Enabled = false
	b := Calculate(in)
	assert.Zero(t, b.Mass)
	assert.Zero(t, b.L1)
	assert.Zero(t, b.L4)
}

func TestEnvelopeDisabledForcesLightingAndHeatingZero(t *testing.T) {
	in := fullRoom()
	in.Envelope.Enabled = false
	b := Calculate(in)
	assert.Zero(t, b.FloorArea)
	assert.Zero(t, b.L2)
	assert.Zero(t, b.L6)
	assert.Zero(t, b.L8)
	for _, row := range b.Envelope {
		assert.Zero(t, row.HeatGainW)
	}
}

func TestProductDensity(t *testing.T) {
	assert.Equal(t, 500.0, ProductDensity(Fresh))
	assert.Equal(t, 500.0, ProductDensity(FreshStoredFrozen))
	assert.Equal(t, 650.0, ProductDensity(Frozen))

	in := LoadInputs{RoomVolume: 100, Product: ProductInputs{Enabled: true, State: FreshStoredFrozen, OccupiedRatePct: 50, StoringRatePct: 50}}
	b := Calculate(in)
	assert.Equal(t, 500.0, b.Density)
	assert.InDelta(t, 12500.0, b.Mass, 1e-9)
}

func TestProductLoadByState(t *testing.T) {
	base := LoadInputs{RoomVolume: 100, Product: ProductInputs{
		Enabled: true, CpFresh: 3.6, CpFrozen: 1.9, LatentHeat: 250,
		T1: 10, T2: -18, Tf: -2, TimeHours: 10, OccupiedRatePct: 50, StoringRatePct: 50,
	}}

	t.Run("fresh", func(t *testing.T) {
		in := base
		in.Product.State = Fresh
		b := Calculate(in)
		want := 12500.0 / 36000 * 3.6 * 28
		assert.InDelta(t, want, b.L1, 1e-9)
	})

	t.Run("fresh stored frozen", func(t *testing.T) {
		in := base
		in.Product.State = FreshStoredFrozen
		b := Calculate(in)
		want := 12500.0 / 36000 * (3.6*12 + 250 + 1.9*16)
		assert.InDelta(t, want, b.L1, 1e-9)
	})

	t.Run("frozen", func(t *testing.T) {
		in := base
		in.Product.State = Frozen
		b := Calculate(in)
		want := 16250.0 / 36000 * 1.9 * 28
		assert.InDelta(t, want, b.L1, 1e-9)
	})

	t.Run("no time still gives mass", func(t *testing.T) {
		in := base
		in.Product.State = Fresh
		in.Product.TimeHours = 0
		in.Respiration = RespirationInputs{Enabled: true, QRespiration: 0.02}
		b := Calculate(in)
		assert.Zero(t, b.L1)
		assert.InDelta(t, 12500.0, b.Mass, 1e-9)
		assert.InDelta(t, 0.25, b.L4, 1e-12)
	})

	t.Run("unknown state", func(t *testing.T) {
		in := base
		in.Product.State = "9"
		b := Calculate(in)
		assert.Zero(t, b.L1)
		assert.Equal(t, 650.0, b.Density)
	})
}

func TestFloorUsesGroundTemperature(t *testing.T) {
	in := LoadInputs{TOutside: 35, TRoom: -18, TGround: 15, IsGroundFloor: true}
	in.Envelope.Enabled = true
	in.Envelope.Rows[5] = EnvelopeRow{U: 0.2, Area: 40, DtSolar: 0}
	in.Envelope.Rows[4] = EnvelopeRow{U: 0.2, Area: 40, DtSolar: 0}

	b := Calculate(in)
	assert.InDelta(t, 33.0, b.Envelope[5].DtTotal, 1e-12)
	assert.InDelta(t, 53.0, b.Envelope[4].DtTotal, 1e-12)
	assert.Equal(t, 40.0, b.FloorArea)

	in.IsGroundFloor = false
	b = Calculate(in)
	assert.InDelta(t, 53.0, b.Envelope[5].DtTotal, 1e-12)
}

func TestAirChangeWorkersLighting(t *testing.T) {
	in := LoadInputs{RoomVolume: 120}
	in.Envelope.Enabled = true
	in.Envelope.Rows[5].Area = 30
	in.AirChange = AirChangeInputs{Enabled: true, DensityOutside: 1.2, AirChangesPerDay: 10, EnthalpyOutside: 80, EnthalpyRoom: 20}
	in.Workers = WorkerInputs{Enabled: true, Count: 3, HeatPerWorker: 300, Hours: 8}
	in.Lighting = LightingInputs{Enabled: true, Intensity: 12, Hours: 6}

	b := Calculate(in)
	assert.InDelta(t, 1.2*(10*120.0/86400)*60, b.L3, 1e-12)
	assert.InDelta(t, 0.3, b.L5, 1e-12)
	assert.InDelta(t, 12*30*0.25*1e-3, b.L6, 1e-12)
}

func TestHeatingLoad(t *testing.T) {
	in := LoadInputs{IsGroundFloor: true, Heating: HeatingInputs{Enabled: true}}
	in.Envelope.Enabled = true
	in.Envelope.Rows[5].Area = 200

	for state, want := range map[ProductState]float64{
		Fresh:             0,
		FreshStoredFrozen: 1.0,
		Frozen:            1.0,
	} {
		in.Product.State = state
		assert.InDelta(t, want, Calculate(in).L8, 1e-12, string(state))
	}

	in.Product.State = Frozen
	in.IsGroundFloor = false
	assert.Zero(t, Calculate(in).L8)
}

func TestHeatingReadsStateWhenProductDisabled(t *testing.T) {
	in := LoadInputs{IsGroundFloor: true, Heating: HeatingInputs{Enabled: true}}
	in.Envelope.Enabled = true
	in.Envelope.Rows[5].Area = 100
	in.Product = ProductInputs{Enabled: false, State: Frozen, OccupiedRatePct: 90}

	b := Calculate(in)
	assert.InDelta(t, 0.5, b.L8, 1e-12)
	assert.Zero(t, b.Mass)
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	in := fullRoom()
	in.Workers.Enabled = false
	before := in
	Calculate(in)
	require.Equal(t, before, in)
}

func TestExtremeValuesStayFinite(t *testing.T) {
	in := fullRoom()
	in.RoomVolume = 1e308
	in.Product.OccupiedRatePct = 1e308
	b := Calculate(in)
	assertFinite(t, b)
	assert.Equal(t, sumOf(b), b.TotalLoad)
}

func assertFinite(t *testing.T, b LoadBreakdown) {
	t.Helper()
	for i, l := range b.Components() {
		assert.False(t, math.IsNaN(l) || math.IsInf(l, 0), "L%d = %v", i+1, l)
	}
	assert.False(t, math.IsNaN(b.TotalLoad) || math.IsInf(b.TotalLoad, 0), "total = %v", b.TotalLoad)
	assert.False(t, math.IsNaN(b.RequiredCapacity) || math.IsInf(b.RequiredCapacity, 0), "rc = %v", b.RequiredCapacity)
}

func TestOverflowingTotalAndCapacityAreZeroed(t *testing.T) {
	t.Run("huge safety factor", func(t *testing.T) {
		b := Calculate(LoadInputs{
			Machine:         MachineInputs{Enabled: true, PowerKW: 10},
			CompressorHours: 1,
			SafetyFactor:    1e308,
		})
		assertFinite(t, b)
		assert.Equal(t, 7.0, b.L7)
		assert.Equal(t, 7.0, b.TotalLoad)
		assert.Zero(t, b.RequiredCapacity)
	})

	t.Run("denormal compressor hours", func(t *testing.T) {
		b := Calculate(LoadInputs{
			Machine:         MachineInputs{Enabled: true, PowerKW: 10},
			CompressorHours: 5e-324,
			SafetyFactor:    1,
		})
		assertFinite(t, b)
		assert.Zero(t, b.RequiredCapacity)
	})

	t.Run("finite components overflowing the sum", func(t *testing.T) {
		b := Calculate(LoadInputs{
			RoomVolume: 24 * 3600,
			AirChange:  AirChangeInputs{Enabled: true, DensityOutside: 1e308, AirChangesPerDay: 1, EnthalpyOutside: 1},
			Machine:    MachineInputs{Enabled: true, PowerKW: 1.5e308},
		})
		require.False(t, math.IsInf(b.L3, 0))
		require.False(t, math.IsInf(b.L7, 0))
		assertFinite(t, b)
		assert.Zero(t, b.TotalLoad)
	})
}
