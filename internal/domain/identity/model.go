package identity

import (
	"encoding/json"
	"fmt"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
	"github.com/XxRubinhoxX/Cuidate-beta/pkg/timestamp"
)

// Kind discriminates the user variants in persisted documents.
type Kind string

const (
	KindPatient Kind = "patient"
	KindDoctor  Kind = "doctor"
)

// Account holds the fields every user kind shares.
type Account struct {
	ID           string         `json:"id"`
	NationalID   string         `json:"national_id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Kind         Kind           `json:"type"`
	RegisteredAt timestamp.Time `json:"registered_at"`
}

// Base returns the shared account fields.
func (a *Account) Base() *Account { return a }

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// CheckPassword compares in plain text.
func (a *Account) CheckPassword(password string) bool {
	return a.Password == password
}

// ProfileUpdate carries new account values. Empty fields are left unchanged.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (a *Account) UpdateProfile(u ProfileUpdate) {
	if u.FirstName != "" {
		a.FirstName = u.FirstName
	}
	if u.LastName != "" {
		a.LastName = u.LastName
	}
	if u.Email != "" {
		a.Email = u.Email
	}
	if u.Password != "" {
		a.Password = u.Password
	}
}

// User is a Patient or a Doctor.
type User interface {
	Base() *Account
	FullName() string
	CheckPassword(password string) bool
	UpdateProfile(u ProfileUpdate)
	isUser()
}

// Patient is a user who requests consultations.
type Patient struct {
	Account
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	BloodType     string   `json:"blood_type"`
	Consultations []string `json:"consultations"`
}

func (*Patient) isUser() {}

// AddConsultation appends id to the request history unless already present.
func (p *Patient) AddConsultation(id string) {
	if !contains(p.Consultations, id) {
		p.Consultations = append(p.Consultations, id)
	}
}

// MedicalUpdate carries new medical values. A nil Age and empty strings are
// left unchanged.
type MedicalUpdate struct {
	Age       *int
	Gender    string
	Address   string
	Phone     string
	BloodType string
}

func (p *Patient) UpdateMedical(u MedicalUpdate) {
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Gender != "" {
		p.Gender = u.Gender
	}
	if u.Address != "" {
		p.Address = u.Address
	}
	if u.Phone != "" {
		p.Phone = u.Phone
	}
	if u.BloodType != "" {
		p.BloodType = u.BloodType
	}
}

// Doctor is a user who attends consultations.
type Doctor struct {
	Account
	Specialty            string   `json:"specialty"`
	License              string   `json:"license"`
	YearsExperience      int      `json:"years_experience"`
	AssignedPatients     []string `json:"assigned_patients"`
	HandledConsultations []string `json:"handled_consultations"`
}

func (*Doctor) isUser() {}

func (d *Doctor) AssignPatient(patientID string) {
	if !contains(d.AssignedPatients, patientID) {
		d.AssignedPatients = append(d.AssignedPatients, patientID)
	}
}

func (d *Doctor) RecordHandled(consultationID string) {
	if !contains(d.HandledConsultations, consultationID) {
		d.HandledConsultations = append(d.HandledConsultations, consultationID)
	}
}

// ProfessionalUpdate carries new professional values. A nil YearsExperience
// and empty strings are left unchanged.
type ProfessionalUpdate struct {
	Specialty       string
	License         string
	YearsExperience *int
}

func (d *Doctor) UpdateProfessional(u ProfessionalUpdate) {
	if u.Specialty != "" {
		d.Specialty = u.Specialty
	}
	if u.License != "" {
		d.License = u.License
	}
	if u.YearsExperience != nil {
		d.YearsExperience = *u.YearsExperience
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// -- Serialisation --

func encodeUser(u User) (json.RawMessage, error) {
	return store.Marshal(u)
}

func decodeUser(body json.RawMessage) (User, error) {
	var head struct {
		Kind Kind `json:"type"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return nil, err
	}

	switch head.Kind {
	case KindPatient:
		p := &Patient{}
		if err := json.Unmarshal(body, p); err != nil {
			return nil, err
		}
		if p.Consultations == nil {
			p.Consultations = []string{}
		}
		return p, nil
	case KindDoctor:
		d := &Doctor{}
		if err := json.Unmarshal(body, d); err != nil {
			return nil, err
		}
		if d.AssignedPatients == nil {
			d.AssignedPatients = []string{}
		}
		if d.HandledConsultations == nil {
			d.HandledConsultations = []string{}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown user type %q", head.Kind)
	}
}
