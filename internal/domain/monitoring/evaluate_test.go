package monitoring

import (
	"reflect"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		vitals Vitals
		want   []string
	}{
		{
			name:   "normal",
			vitals: Vitals{Systolic: 120, Diastolic: 80, HeartRate: 70, Temperature: 36.5, OxygenSaturation: 98},
			want:   nil,
		},
		{
			name:   "everything high",
			vitals: Vitals{Systolic: 150, Diastolic: 95, HeartRate: 110, Temperature: 38.0, OxygenSaturation: 90},
			want:   []string{AlertHighPressure, AlertHighHeartRate, AlertFever, AlertLowSaturation},
		},
		{
			name:   "everything low",
			vitals: Vitals{Systolic: 85, Diastolic: 55, HeartRate: 50, Temperature: 35.2, OxygenSaturation: 99},
			want:   []string{AlertLowPressure, AlertLowHeartRate, AlertHypothermia},
		},
		{
			name:   "high systolic suppresses low diastolic",
			vitals: Vitals{Systolic: 145, Diastolic: 50, HeartRate: 70, Temperature: 36.5, OxygenSaturation: 98},
			want:   []string{AlertHighPressure},
		},
		{
			name:   "boundaries are healthy",
			vitals: Vitals{Systolic: 140, Diastolic: 90, HeartRate: 100, Temperature: 37.5, OxygenSaturation: 95},
			want:   nil,
		},
		{
			name:   "lower boundaries are healthy",
			vitals: Vitals{Systolic: 90, Diastolic: 60, HeartRate: 60, Temperature: 36.0, OxygenSaturation: 95},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.vitals)
			if !reflect.DeepEqual(got.Alerts, tt.want) {
				t.Errorf("Alerts = %v, want %v", got.Alerts, tt.want)
			}
		})
	}
}

func TestEvaluation_String(t *testing.T) {
	normal := Evaluate(Vitals{Systolic: 120, Diastolic: 80, HeartRate: 70, Temperature: 36.5, OxygenSaturation: 98})
	if normal.String() != "normal — all vitals within healthy range" {
		t.Errorf("String() = %q", normal.String())
	}

	rec := &HealthRecord{Vitals: Vitals{Systolic: 150, Diastolic: 95, HeartRate: 110, Temperature: 38.0, OxygenSaturation: 90}}
	want := "alert: elevated blood pressure, elevated heart rate, fever, low oxygen saturation"
	if got := rec.Evaluate().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
