package glucose

// Reading types a patient can log.
const (
	TypeFasting = "fasting"
	TypeOneHour = "one_hour"
	TypeTwoHour = "two_hour"
	TypeRandom  = "random"
)

// Classification outcomes.
const (
	StatusNormal   = "normal"
	StatusElevated = "elevated"
	StatusHigh     = "high"
)

// thresholds per reading type, mg/dL: below target is normal, below
// high is elevated, otherwise high. Targets follow standard GDM
// monitoring guidance.
var thresholds = map[string]struct {
	target float64
	high   float64
}{
	TypeFasting: {target: 95, high: 126},
	TypeOneHour: {target: 140, high: 180},
	TypeTwoHour: {target: 120, high: 153},
	TypeRandom:  {target: 140, high: 200},
}

func ValidType(readingType string) bool {
	_, ok := thresholds[readingType]
	return ok
}

// Classify maps a reading to normal/elevated/high. Unknown types
// classify against the random-reading thresholds.
func Classify(readingType string, valueMgDl float64) string {
	t, ok := thresholds[readingType]
	if !ok {
		t = thresholds[TypeRandom]
	}

	switch {
	case valueMgDl < t.target:
		return StatusNormal
	case valueMgDl < t.high:
		return StatusElevated
	default:
		return StatusHigh
	}
}
