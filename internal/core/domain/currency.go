package domain

// minorUnitExceptions lists the ISO 4217 currencies whose minor-unit exponent
// is not 2.
var minorUnitExceptions = map[string]int32{
	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"LYD": 3,
	"OMR": 3,
	"TND": 3,
	"VND": 0,
}

// MinorUnits returns the number of decimal places of the minor unit for a
// currency code. Currencies without a published exception use 2.
func MinorUnits(currencyCode string) int32 {
	if units, ok := minorUnitExceptions[currencyCode]; ok {
		return units
	}
	return 2
}
