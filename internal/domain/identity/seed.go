package identity

import (
	"context"
)

// ExampleDoctor and ExamplePatient are the accounts created on first run.
var (
	ExampleDoctor = DoctorProfile{
		Profile: Profile{
			NationalID: "1234567890",
			FirstName:  "Carlos",
			LastName:   "Gaitan",
			Email:      "carlos.gaitan@cuidate.com",
			Password:   "medico123",
		},
		Specialty:       "Medicina General",
		License:         "RM-2024-001",
		YearsExperience: 5,
	}
	ExamplePatient = PatientProfile{
		Profile: Profile{
			NationalID: "0987654321",
			FirstName:  "lana",
			LastName:   "ruedas",
			Email:      "lana.ruedas@email.com",
			Password:   "paciente123",
		},
		Age:       30,
		Gender:    "Femenino",
		Address:   "Calle 123",
		Phone:     "3001234567",
		BloodType: "O+",
	}
)

// Seed creates MED001 and PAC001 when the store had no users document at
// load time. It reports whether anything was written. Calling it again, or
// after a failed load, is a no-op.
func (s *Service) Seed(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fresh || s.users.len() > 0 {
		return false
	}
	s.fresh = false

	s.users.put(&Doctor{
		Account:              s.account(ExampleDoctor.Profile, "MED001", KindDoctor),
		Specialty:            ExampleDoctor.Specialty,
		License:              ExampleDoctor.License,
		YearsExperience:      ExampleDoctor.YearsExperience,
		AssignedPatients:     []string{},
		HandledConsultations: []string{},
	})
	s.users.put(&Patient{
		Account:       s.account(ExamplePatient.Profile, "PAC001", KindPatient),
		Age:           ExamplePatient.Age,
		Gender:        ExamplePatient.Gender,
		Address:       ExamplePatient.Address,
		Phone:         ExamplePatient.Phone,
		BloodType:     ExamplePatient.BloodType,
		Consultations: []string{},
	})
	s.persist(ctx)
	s.logger.Info().Msg("example accounts seeded")
	return true
}
