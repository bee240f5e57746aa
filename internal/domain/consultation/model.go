package consultation

import (
	"encoding/json"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
	"github.com/XxRubinhoxX/Cuidate-beta/pkg/timestamp"
)

// Status is the lifecycle position of a consultation.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Consultation is a patient's request to a doctor.
type Consultation struct {
	ID          string          `json:"id"`
	PatientID   string          `json:"patient_id"`
	DoctorID    string          `json:"doctor_id"`
	Reason      string          `json:"reason"`
	Status      Status          `json:"status"`
	RequestedAt timestamp.Time  `json:"requested_at"`
	AttendedAt  *timestamp.Time `json:"attended_at"`
	Diagnosis   string          `json:"diagnosis"`
	Treatment   string          `json:"treatment"`
	Notes       string          `json:"notes"`
}

func (c *Consultation) IsPending() bool   { return c.Status == StatusPending }
func (c *Consultation) IsCompleted() bool { return c.Status == StatusCompleted }

// markAttended stamps AttendedAt unless it is already set.
func (c *Consultation) markAttended(ts timestamp.Time) {
	if c.AttendedAt == nil {
		c.AttendedAt = &ts
	}
}

// Stats counts a doctor's consultations by status.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

func (s *Stats) add(st Status) {
	s.Total++
	switch st {
	case StatusPending:
		s.Pending++
	case StatusInProgress:
		s.InProgress++
	case StatusCompleted:
		s.Completed++
	case StatusCancelled:
		s.Cancelled++
	}
}

func encode(c *Consultation) (json.RawMessage, error) {
	return store.Marshal(c)
}

func decode(body json.RawMessage) (*Consultation, error) {
	c := &Consultation{}
	if err := json.Unmarshal(body, c); err != nil {
		return nil, err
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return c, nil
}
