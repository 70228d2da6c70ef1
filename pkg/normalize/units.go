package normalize

// Canonical units are grams for weight and millimeters for dimensions.
// Unrecognized or empty unit strings are treated as already canonical, which
// matches the zero-default behavior for numeric fields.

const (
	gramsPerKilogram = 1000.0
	gramsPerOunce    = 28.349523125
	gramsPerPound    = 453.59237

	mmPerCentimeter = 10.0
	mmPerMeter      = 1000.0
	mmPerInch       = 25.4
)

// Grams converts a platform-native weight to grams.
func Grams(value float64, unit string) float64 {
	switch unit {
	case "kg":
		return value * gramsPerKilogram
	case "oz":
		return value * gramsPerOunce
	case "lb":
		return value * gramsPerPound
	default: // "g" or unspecified
		return value
	}
}

// Millimeters converts a platform-native length to millimeters.
func Millimeters(value float64, unit string) float64 {
	switch unit {
	case "cm":
		return value * mmPerCentimeter
	case "m":
		return value * mmPerMeter
	case "in":
		return value * mmPerInch
	default: // "mm" or unspecified
		return value
	}
}
