package deconv

// Physical constants (spec §6): the two accepted proton masses.
const (
	ProtonMassMonoisotopic = 1.007276
	ProtonMassAverage      = 1.00784
)

// Config holds every tunable the engine reads. It is treated as immutable
// once constructed; callers may safely share one Config across concurrent
// calls to Deconvolute on different spectra (spec §5).
type Config struct {
	MinCharge           int
	MaxCharge           int
	MinPeaks            int
	NoiseCutoff         float64
	AbundanceCutoff     float64
	MWAgreement         float64
	MWAssignCutoff      float64
	EnvelopeCutoff      float64
	PWHH                float64
	LowMW               float64
	HighMW              float64
	ContigMin           int
	UseMZAgreement      bool
	UseMonoisotopicProton bool
	MaxOverlap          float64

	// MinIntensityPct and singly-charged mass bounds are consumed only by
	// the singly-charged detector (§4.G); they default to the values named
	// there.
	MinIntensityPct float64
	SinglyLowMW     float64
	SinglyHighMW    float64
}

// DefaultConfig returns the configuration defaults listed in spec §6.
func DefaultConfig() Config {
	return Config{
		MinCharge:             5,
		MaxCharge:             50,
		MinPeaks:              3,
		NoiseCutoff:           1000.0,
		AbundanceCutoff:       0.10,
		MWAgreement:           5e-4,
		MWAssignCutoff:        0.40,
		EnvelopeCutoff:        0.50,
		PWHH:                  0.6,
		LowMW:                 500,
		HighMW:                50000,
		ContigMin:             3,
		UseMZAgreement:        false,
		UseMonoisotopicProton: false,
		MaxOverlap:            0.0,
		MinIntensityPct:       1.0,
		SinglyLowMW:           100,
		SinglyHighMW:          2000,
	}
}

// ProtonMass returns the proton mass selected by UseMonoisotopicProton.
func (c Config) ProtonMass() float64 {
	if c.UseMonoisotopicProton {
		return ProtonMassMonoisotopic
	}
	return ProtonMassAverage
}
