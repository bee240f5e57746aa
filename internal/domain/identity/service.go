package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
	"github.com/XxRubinhoxX/Cuidate-beta/pkg/timestamp"
)

// Service owns the user collection. Every mutation rewrites the whole
// collection through the store.
type Service struct {
	mu     sync.Mutex
	store  store.Store
	logger zerolog.Logger
	now    func() time.Time
	users  *directory
	// fresh is true when the store held no document at load time.
	fresh bool
}

// NewService loads the collection from st. Load failures are logged and the
// service starts empty.
func NewService(ctx context.Context, st store.Store, logger zerolog.Logger) *Service {
	s := &Service{
		store:  st,
		logger: logger.With().Str("collection", "users").Logger(),
		now:    time.Now,
		users:  newDirectory(),
	}
	s.load(ctx)
	return s
}

// SetClock replaces the time source used for registration timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) load(ctx context.Context) {
	docs, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNoDocument) {
		s.fresh = true
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load users, starting empty")
		return
	}

	for _, d := range docs {
		u, err := decodeUser(d.Body)
		if err != nil {
			s.logger.Warn().Err(err).Str("id", d.ID).Msg("skipping unreadable user")
			continue
		}
		if u.Base().ID == "" {
			u.Base().ID = d.ID
		}
		s.users.put(u)
	}
	s.logger.Debug().Int("count", s.users.len()).Msg("users loaded")
}

// persist writes the collection. Failures are logged, not returned: memory
// stays authoritative until the next successful save.
func (s *Service) persist(ctx context.Context) {
	docs, err := s.users.documents()
	if err == nil {
		err = s.store.Save(ctx, docs)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save users")
	}
}

// -- Registration --

// Profile holds the account fields supplied at registration.
type Profile struct {
	NationalID string
	FirstName  string
	LastName   string
	Email      string
	Password   string
}

type PatientProfile struct {
	Profile
	Age       int
	Gender    string
	Address   string
	Phone     string
	BloodType string
}

type DoctorProfile struct {
	Profile
	Specialty       string
	License         string
	YearsExperience int
}

func (s *Service) account(p Profile, id string, kind Kind) Account {
	return Account{
		ID:           id,
		NationalID:   p.NationalID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Password:     p.Password,
		Kind:         kind,
		RegisteredAt: timestamp.New(s.now()),
	}
}

func (s *Service) RegisterPatient(ctx context.Context, p PatientProfile) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findByNationalID(p.NationalID); ok {
		return nil, fmt.Errorf("register patient %s: %w", p.NationalID, ErrDuplicateNationalID)
	}

	patient := &Patient{
		Account:       s.account(p.Profile, s.nextID("PAC", KindPatient), KindPatient),
		Age:           p.Age,
		Gender:        p.Gender,
		Address:       p.Address,
		Phone:         p.Phone,
		BloodType:     p.BloodType,
		Consultations: []string{},
	}
	s.users.put(patient)
	s.persist(ctx)
	s.logger.Info().Str("id", patient.ID).Msg("patient registered")
	return patient, nil
}

func (s *Service) RegisterDoctor(ctx context.Context, p DoctorProfile) (*Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findByNationalID(p.NationalID); ok {
		return nil, fmt.Errorf("register doctor %s: %w", p.NationalID, ErrDuplicateNationalID)
	}

	doctor := &Doctor{
		Account:              s.account(p.Profile, s.nextID("MED", KindDoctor), KindDoctor),
		Specialty:            p.Specialty,
		License:              p.License,
		YearsExperience:      p.YearsExperience,
		AssignedPatients:     []string{},
		HandledConsultations: []string{},
	}
	s.users.put(doctor)
	s.persist(ctx)
	s.logger.Info().Str("id", doctor.ID).Msg("doctor registered")
	return doctor, nil
}

// nextID numbers from the count of users of the same kind, skipping IDs
// that are already taken.
func (s *Service) nextID(prefix string, kind Kind) string {
	n := 0
	s.users.each(func(u User) bool {
		if u.Base().Kind == kind {
			n++
		}
		return true
	})
	for {
		n++
		id := fmt.Sprintf("%s%03d", prefix, n)
		if _, taken := s.users.get(id); !taken {
			return id
		}
	}
}

// -- Lookup --

// Authenticate returns the user with nationalID when password matches.
func (s *Service) Authenticate(_ context.Context, nationalID, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findByNationalID(nationalID)
	if !ok || !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) findByNationalID(nationalID string) (User, bool) {
	var found User
	s.users.each(func(u User) bool {
		if u.Base().NationalID == nationalID {
			found = u
			return false
		}
		return true
	})
	return found, found != nil
}

func (s *Service) FindByNationalID(_ context.Context, nationalID string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findByNationalID(nationalID)
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) FindByID(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// Patient returns the patient with id, or ErrNotFound when id is unknown or
// belongs to a doctor.
func (s *Service) Patient(_ context.Context, id string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patient(id)
}

func (s *Service) patient(id string) (*Patient, error) {
	u, _ := s.users.get(id)
	p, ok := u.(*Patient)
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// Doctor returns the doctor with id, or ErrNotFound when id is unknown or
// belongs to a patient.
func (s *Service) Doctor(_ context.Context, id string) (*Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doctor(id)
}

func (s *Service) doctor(id string) (*Doctor, error) {
	u, _ := s.users.get(id)
	d, ok := u.(*Doctor)
	if !ok {
		return nil, fmt.Errorf("doctor %s: %w", id, ErrNotFound)
	}
	return d, nil
}

func (s *Service) ListDoctors(_ context.Context) []*Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Doctor
	s.users.each(func(u User) bool {
		if d, ok := u.(*Doctor); ok {
			out = append(out, d)
		}
		return true
	})
	return out
}

func (s *Service) ListPatients(_ context.Context) []*Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Patient
	s.users.each(func(u User) bool {
		if p, ok := u.(*Patient); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// -- Mutation --

// Update stores u in place of the user with the same ID and persists. Unknown
// IDs are ignored. A patient stays a patient and a doctor stays a doctor, and
// the national id must not belong to another user.
func (s *Service) Update(ctx context.Context, u User) error {
	if u == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := u.Base().ID
	stored, ok := s.users.get(id)
	if !ok {
		return nil
	}
	if kindOf(u) != kindOf(stored) || u.Base().Kind != stored.Base().Kind {
		return fmt.Errorf("user %s: %w", id, ErrKindChange)
	}
	if other, ok := s.findByNationalID(u.Base().NationalID); ok && other.Base().ID != id {
		return fmt.Errorf("user %s: %w", id, ErrDuplicateNationalID)
	}
	s.users.put(u)
	s.persist(ctx)
	return nil
}

func kindOf(u User) Kind {
	switch u.(type) {
	case *Patient:
		return KindPatient
	case *Doctor:
		return KindDoctor
	}
	return ""
}

// LinkConsultation records a new consultation on both parties: the patient's
// history gains consultationID and the doctor gains the patient. Both users
// are checked before either is touched, and the collection is saved once.
func (s *Service) LinkConsultation(ctx context.Context, patientID, doctorID, consultationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patient(patientID)
	if err != nil {
		return err
	}
	d, err := s.doctor(doctorID)
	if err != nil {
		return err
	}

	p.AddConsultation(consultationID)
	d.AssignPatient(patientID)
	s.persist(ctx)
	return nil
}

// RecordHandled adds consultationID to the doctor's handled list.
func (s *Service) RecordHandled(ctx context.Context, doctorID, consultationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.doctor(doctorID)
	if err != nil {
		return err
	}
	d.RecordHandled(consultationID)
	s.persist(ctx)
	return nil
}
