package monitoring

import "strings"

const (
	AlertHighPressure  = "elevated blood pressure"
	AlertLowPressure   = "low blood pressure"
	AlertHighHeartRate = "elevated heart rate"
	AlertLowHeartRate  = "low heart rate"
	AlertFever         = "fever"
	AlertHypothermia   = "hypothermia"
	AlertLowSaturation = "low oxygen saturation"

	normalSummary      = "normal — all vitals within healthy range"
	alertSummaryPrefix = "alert: "
)

// Evaluation lists the triggered alerts in rule order.
type Evaluation struct {
	Alerts []string
}

func (e Evaluation) Normal() bool {
	return len(e.Alerts) == 0
}

func (e Evaluation) String() string {
	if e.Normal() {
		return normalSummary
	}
	return alertSummaryPrefix + strings.Join(e.Alerts, ", ")
}

// Evaluate checks each vital in a fixed order. For each vital the high-side
// rule wins over the low-side one.
func Evaluate(v Vitals) Evaluation {
	var alerts []string

	switch {
	case v.Systolic > 140 || v.Diastolic > 90:
		alerts = append(alerts, AlertHighPressure)
	case v.Systolic < 90 || v.Diastolic < 60:
		alerts = append(alerts, AlertLowPressure)
	}

	switch {
	case v.HeartRate > 100:
		alerts = append(alerts, AlertHighHeartRate)
	case v.HeartRate < 60:
		alerts = append(alerts, AlertLowHeartRate)
	}

	switch {
	case v.Temperature > 37.5:
		alerts = append(alerts, AlertFever)
	case v.Temperature < 36.0:
		alerts = append(alerts, AlertHypothermia)
	}

	if v.OxygenSaturation < 95 {
		alerts = append(alerts, AlertLowSaturation)
	}

	return Evaluation{Alerts: alerts}
}
