package monitoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
	"github.com/XxRubinhoxX/Cuidate-beta/pkg/timestamp"
)

// Service owns the health record collection.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	logger  zerolog.Logger
	now     func() time.Time
	rand    *rand.Rand
	records *history
}

func NewService(ctx context.Context, st store.Store, logger zerolog.Logger) *Service {
	s := &Service{
		store:   st,
		logger:  logger.With().Str("collection", "records").Logger(),
		now:     time.Now,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		records: newHistory(),
	}
	s.load(ctx)
	return s
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetRand replaces the source used for simulated readings and advice.
func (s *Service) SetRand(r *rand.Rand) {
	s.rand = r
}

func (s *Service) load(ctx context.Context) {
	docs, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNoDocument) {
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load health records, starting empty")
		return
	}
	for _, d := range docs {
		r, err := decode(d.Body)
		if err != nil {
			s.logger.Warn().Err(err).Str("id", d.ID).Msg("skipping unreadable health record")
			continue
		}
		if r.ID == "" {
			r.ID = d.ID
		}
		s.records.put(r)
	}
	s.logger.Debug().Int("count", s.records.len()).Msg("health records loaded")
}

func (s *Service) persist(ctx context.Context) {
	docs, err := s.records.documents()
	if err == nil {
		err = s.store.Save(ctx, docs)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save health records")
	}
}

func (s *Service) nextID() string {
	for n := s.records.len() + 1; ; n++ {
		id := fmt.Sprintf("REG%05d", n)
		if _, taken := s.records.get(id); !taken {
			return id
		}
	}
}

func (s *Service) add(ctx context.Context, patientID string, v Vitals) *HealthRecord {
	r := &HealthRecord{
		ID:         s.nextID(),
		PatientID:  patientID,
		Vitals:     v,
		RecordedAt: timestamp.New(s.now()),
	}
	s.records.put(r)
	s.persist(ctx)
	s.logger.Info().Str("id", r.ID).Str("patient_id", patientID).Msg("health record created")
	return r
}

// CreateSimulated records a plausible random reading for the patient.
func (s *Service) CreateSimulated(ctx context.Context, patientID string) (*HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, patientID, s.simulate()), nil
}

// simulate draws each vital uniformly from its healthy range. Temperature
// is rounded to one decimal.
func (s *Service) simulate() Vitals {
	between := func(lo, hi int) int { return lo + s.rand.Intn(hi-lo+1) }
	return Vitals{
		Systolic:         between(110, 140),
		Diastolic:        between(70, 90),
		HeartRate:        between(60, 100),
		Temperature:      math.Round((36.0+s.rand.Float64()*1.5)*10) / 10,
		OxygenSaturation: between(95, 100),
	}
}

// CreateManual records the given readings as entered. Values are not
// checked for plausibility.
func (s *Service) CreateManual(ctx context.Context, patientID string, v Vitals) (*HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, patientID, v), nil
}

func (s *Service) Find(_ context.Context, id string) (*HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records.get(id)
	if !ok {
		return nil, fmt.Errorf("health record %s: %w", id, ErrNotFound)
	}
	return r, nil
}

// Annotate replaces the record's notes.
func (s *Service) Annotate(ctx context.Context, id, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records.get(id)
	if !ok {
		return fmt.Errorf("health record %s: %w", id, ErrNotFound)
	}
	r.Notes = notes
	s.persist(ctx)
	return nil
}

func (s *Service) ByPatient(_ context.Context, patientID string) []*HealthRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.forPatient(patientID)
}

// newestFirst orders records by RecordedAt descending. Among equal times the
// later-inserted record comes first.
func newestFirst(records []*HealthRecord) []*HealthRecord {
	out := make([]*HealthRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt.Time)
	})
	return out
}

// LatestForPatient returns the patient's most recent record.
func (s *Service) LatestForPatient(_ context.Context, patientID string) (*HealthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records.forPatient(patientID)
	if len(records) == 0 {
		return nil, fmt.Errorf("no health records for patient %s: %w", patientID, ErrNotFound)
	}
	return newestFirst(records)[0], nil
}

// AnalyzeTrends compares the patient's two most recent records.
func (s *Service) AnalyzeTrends(_ context.Context, patientID string) (Trends, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records.forPatient(patientID)
	if len(records) < 2 {
		return Trends{}, fmt.Errorf("patient %s has %d records: %w", patientID, len(records), ErrInsufficientData)
	}
	sorted := newestFirst(records)
	return compare(sorted[0], sorted[1]), nil
}

// GenerateAdvice returns AdviceCount distinct tips from AdvicePool.
func (s *Service) GenerateAdvice() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, AdviceCount)
	for _, i := range s.rand.Perm(len(AdvicePool))[:AdviceCount] {
		out = append(out, AdvicePool[i])
	}
	return out
}
