package consultation

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

// Service owns the consultation collection. It does not touch users; linking
// a consultation to its patient and doctor happens one level up.
type Service struct {
	mu            sync.Mutex
	store         store.Store
	logger        zerolog.Logger
	now           func() time.Time
	consultations *ledger
}

func NewService(ctx context.Context, st store.Store, logger zerolog.Logger) *Service {
	s := &Service{
		store:         st,
		logger:        logger.With().Str("collection", "consultations").Logger(),
		now:           time.Now,
		consultations: newLedger(),
	}
	s.load(ctx)
	return s
}

// SetClock replaces the time source used for request and attention times.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) load(ctx context.Context) {
	docs, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNoDocument) {
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load consultations, starting empty")
		return
	}
	for _, d := range docs {
		c, err := decode(d.Body)
		if err != nil {
			s.logger.Warn().Err(err).Str("id", d.ID).Msg("skipping unreadable consultation")
			continue
		}
		if c.ID == "" {
			c.ID = d.ID
		}
		s.consultations.put(c)
	}
	s.logger.Debug().Int("count", s.consultations.len()).Msg("consultations loaded")
}

func (s *Service) persist(ctx context.Context) {
	docs, err := s.consultations.documents()
	if err == nil {
		err = s.store.Save(ctx, docs)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save consultations")
	}
}

func (s *Service) nextID() string {
	for n := s.consultations.len() + 1; ; n++ {
		id := fmt.Sprintf("CON%04d", n)
		if _, taken := s.consultations.get(id); !taken {
			return id
		}
	}
}

// Create opens a pending consultation.
func (s *Service) Create(ctx context.Context, patientID, doctorID, reason string) (*Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Consultation{
		ID:          s.nextID(),
		PatientID:   patientID,
		DoctorID:    doctorID,
		Reason:      reason,
		Status:      StatusPending,
		RequestedAt: timestamp.New(s.now()),
	}
	s.consultations.put(c)
	s.persist(ctx)
	s.logger.Info().Str("id", c.ID).Str("patient_id", patientID).Str("doctor_id", doctorID).Msg("consultation created")
	return c, nil
}

// active returns the consultation with id, failing when it is unknown or
// already completed or cancelled.
func (s *Service) active(id string) (*Consultation, error) {
	c, ok := s.consultations.get(id)
	if !ok {
		return nil, fmt.Errorf("consultation %s: %w", id, ErrNotFound)
	}
	if c.Status.Terminal() {
		return nil, fmt.Errorf("consultation %s is %s: %w", id, c.Status, ErrInvalidTransition)
	}
	return c, nil
}

// Attend moves a pending consultation to in_progress and stamps AttendedAt
// the first time.
func (s *Service) Attend(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.active(id)
	if err != nil {
		return err
	}
	c.Status = StatusInProgress
	c.markAttended(timestamp.New(s.now()))
	s.persist(ctx)
	return nil
}

// RecordDiagnosis completes the consultation. A consultation diagnosed
// straight from pending is stamped as attended at diagnosis time.
func (s *Service) RecordDiagnosis(ctx context.Context, id, diagnosis, treatment, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.active(id)
	if err != nil {
		return err
	}
	c.Diagnosis = diagnosis
	c.Treatment = treatment
	c.Notes = notes
	c.Status = StatusCompleted
	c.markAttended(timestamp.New(s.now()))
	s.persist(ctx)
	s.logger.Info().Str("id", id).Msg("diagnosis recorded")
	return nil
}

// Cancel moves the consultation to cancelled. A non-empty reason replaces
// the notes.
func (s *Service) Cancel(ctx context.Context, id, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.active(id)
	if err != nil {
		return err
	}
	c.Status = StatusCancelled
	if reason != "" {
		c.Notes = "Cancelled: " + reason
	}
	s.persist(ctx)
	s.logger.Info().Str("id", id).Msg("consultation cancelled")
	return nil
}

// Update copies the free-text fields of c (reason, diagnosis, treatment and
// notes) onto the stored consultation with the same ID. Status moves only
// through Attend, RecordDiagnosis and Cancel, so a differing status fails with
// ErrInvalidTransition. Parties and timestamps are never taken from c.
// Unknown IDs are ignored.
func (s *Service) Update(ctx context.Context, c *Consultation) error {
	if c == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.consultations.get(c.ID)
	if !ok {
		return nil
	}
	if c.Status != "" && c.Status != stored.Status {
		return fmt.Errorf("consultation %s is %s, cannot set %s: %w", c.ID, stored.Status, c.Status, ErrInvalidTransition)
	}
	stored.Reason = c.Reason
	stored.Diagnosis = c.Diagnosis
	stored.Treatment = c.Treatment
	stored.Notes = c.Notes
	s.persist(ctx)
	return nil
}

// -- Queries --

func (s *Service) Find(_ context.Context, id string) (*Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.consultations.get(id)
	if !ok {
		return nil, fmt.Errorf("consultation %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *Service) ByPatient(_ context.Context, patientID string) []*Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consultations.filter(func(c *Consultation) bool { return c.PatientID == patientID })
}

func (s *Service) ByDoctor(_ context.Context, doctorID string) []*Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consultations.filter(func(c *Consultation) bool { return c.DoctorID == doctorID })
}

func (s *Service) PendingByDoctor(_ context.Context, doctorID string) []*Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consultations.filter(func(c *Consultation) bool {
		return c.DoctorID == doctorID && c.IsPending()
	})
}

func (s *Service) CompletedByDoctor(_ context.Context, doctorID string) []*Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consultations.filter(func(c *Consultation) bool {
		return c.DoctorID == doctorID && c.IsCompleted()
	})
}

func (s *Service) StatsByDoctor(_ context.Context, doctorID string) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	for _, c := range s.consultations.filter(func(c *Consultation) bool { return c.DoctorID == doctorID }) {
		st.add(c.Status)
	}
	return st
}
