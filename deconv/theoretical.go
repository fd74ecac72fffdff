package deconv

// ChargeMZ pairs a trial charge state with its theoretical m/z.
type ChargeMZ struct {
	Charge uint16
	MZ     float64
}

// TheoreticalMZ returns, for a neutral mass and a set of charge states, the
// theoretical m/z of each resulting ion: mz = (mass + z*p) / z (spec §6,
// GLOSSARY). useMonoisotopic selects which proton mass to use.
func TheoreticalMZ(mass float64, charges []uint16, useMonoisotopic bool) []ChargeMZ {
	proton := ProtonMassAverage
	if useMonoisotopic {
		proton = ProtonMassMonoisotopic
	}
	out := make([]ChargeMZ, len(charges))
	for i, z := range charges {
		out[i] = ChargeMZ{
			Charge: z,
			MZ:     (mass + float64(z)*proton) / float64(z),
		}
	}
	return out
}
