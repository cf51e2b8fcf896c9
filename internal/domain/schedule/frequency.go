package schedule

// Frequency represents how often a recurring expense repeats.
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiweekly   Frequency = "biweekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyBimonthly  Frequency = "bimonthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
)

// Frequencies lists all valid frequency values.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
	FrequencyBimonthly,
	FrequencyQuarterly,
	FrequencySemiannual,
	FrequencyAnnual,
}

// IsValid reports whether the frequency is one of the enumerated values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly,
		FrequencyMonthly, FrequencyBimonthly, FrequencyQuarterly,
		FrequencySemiannual, FrequencyAnnual:
		return true
	}
	return false
}

// dayStep returns the step size in days for day-based frequencies,
// or 0 when the frequency steps by months or years.
func (f Frequency) dayStep() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	}
	return 0
}

// monthStep returns the step size in months for month-based frequencies,
// or 0 otherwise. Annual is handled as a year step.
func (f Frequency) monthStep() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyBimonthly:
		return 2
	case FrequencyQuarterly:
		return 3
	case FrequencySemiannual:
		return 6
	}
	return 0
}
