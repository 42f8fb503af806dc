package estimate

// JoulesToKWh converts an energy quantity from joules to kilowatt-hours.
func JoulesToKWh(joules float64) float64 {
	return joules / JoulesPerKWh
}

// CO2Grams converts an energy quantity in kWh to grams of CO2e using the
// grid carbon intensity of the region. Pure and total over non-negative
// reals; no state, no side effects.
func CO2Grams(energyKWh, intensityGramsPerKWh float64) float64 {
	return energyKWh * intensityGramsPerKWh
}
