package monitoring

import (
	"encoding/json"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
	"github.com/XxRubinhoxX/Cuidate-beta/pkg/timestamp"
)

// Vitals is one set of vital sign readings.
type Vitals struct {
	Systolic         int     `json:"systolic"`
	Diastolic        int     `json:"diastolic"`
	HeartRate        int     `json:"heart_rate"`
	Temperature      float64 `json:"temperature"`
	OxygenSaturation int     `json:"oxygen_saturation"`
}

// HealthRecord is a timestamped Vitals snapshot for a patient. Only Notes
// changes after creation.
type HealthRecord struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Vitals
	RecordedAt timestamp.Time `json:"recorded_at"`
	Notes      string         `json:"notes"`
}

// Evaluate applies the vital sign rules to the record.
func (r *HealthRecord) Evaluate() Evaluation {
	return Evaluate(r.Vitals)
}

func encode(r *HealthRecord) (json.RawMessage, error) {
	return store.Marshal(r)
}

func decode(body json.RawMessage) (*HealthRecord, error) {
	r := &HealthRecord{}
	if err := json.Unmarshal(body, r); err != nil {
		return nil, err
	}
	return r, nil
}
