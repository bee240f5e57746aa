package monitoring

// Direction is the change of a metric between two records.
type Direction string

const (
	Increased Direction = "increased"
	Decreased Direction = "decreased"
	Stable    Direction = "stable"
)

// Trends compares a patient's latest record with the one before it.
type Trends struct {
	Pressure    Direction `json:"pressure"`
	HeartRate   Direction `json:"heart_rate"`
	Temperature Direction `json:"temperature"`
}

func direction[T int | float64](latest, previous T) Direction {
	switch {
	case latest > previous:
		return Increased
	case latest < previous:
		return Decreased
	default:
		return Stable
	}
}

func compare(latest, previous *HealthRecord) Trends {
	return Trends{
		Pressure:    direction(latest.Systolic, previous.Systolic),
		HeartRate:   direction(latest.HeartRate, previous.HeartRate),
		Temperature: direction(latest.Temperature, previous.Temperature),
	}
}
