package monitoring

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
)

// -- Mock Store --

type mockStore struct {
	docs    []store.Document
	loadErr error
	saves   int
}

func newMockStore() *mockStore {
	return &mockStore{loadErr: store.ErrNoDocument}
}

func (m *mockStore) Load(_ context.Context) ([]store.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.docs, nil
}

func (m *mockStore) Save(_ context.Context, docs []store.Document) error {
	m.saves++
	m.docs = docs
	m.loadErr = nil
	return nil
}

var fixedNow = time.Date(2024, 5, 20, 14, 0, 0, 0, time.Local)

func newTestService(t *testing.T, st store.Store, seed int64) *Service {
	t.Helper()
	svc := NewService(context.Background(), st, zerolog.Nop())
	svc.SetClock(func() time.Time { return fixedNow })
	svc.SetRand(rand.New(rand.NewSource(seed)))
	return svc
}

// -- Simulation --

func TestCreateSimulated_Ranges(t *testing.T) {
	svc := newTestService(t, newMockStore(), 42)
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		r, err := svc.CreateSimulated(ctx, "PAC001")
		if err != nil {
			t.Fatal(err)
		}
		if r.Systolic < 110 || r.Systolic > 140 {
			t.Fatalf("systolic %d out of range", r.Systolic)
		}
		if r.Diastolic < 70 || r.Diastolic > 90 {
			t.Fatalf("diastolic %d out of range", r.Diastolic)
		}
		if r.HeartRate < 60 || r.HeartRate > 100 {
			t.Fatalf("heart rate %d out of range", r.HeartRate)
		}
		if r.OxygenSaturation < 95 || r.OxygenSaturation > 100 {
			t.Fatalf("saturation %d out of range", r.OxygenSaturation)
		}
		if r.Temperature < 36.0 || r.Temperature > 37.5 {
			t.Fatalf("temperature %v out of range", r.Temperature)
		}
		if tenths := r.Temperature * 10; math.Abs(tenths-math.Round(tenths)) > 1e-9 {
			t.Fatalf("temperature %v has more than one decimal", r.Temperature)
		}
	}
}

func TestCreate_IDsAndPersistence(t *testing.T) {
	st := newMockStore()
	svc := newTestService(t, st, 1)
	ctx := context.Background()

	first, _ := svc.CreateSimulated(ctx, "PAC001")
	second, _ := svc.CreateManual(ctx, "PAC001", Vitals{Systolic: 300, Diastolic: 5, HeartRate: 0, Temperature: 45.1, OxygenSaturation: 10})

	if first.ID != "REG00001" || second.ID != "REG00002" {
		t.Errorf("IDs = %s, %s", first.ID, second.ID)
	}
	if second.Systolic != 300 || second.Temperature != 45.1 {
		t.Error("manual values must be stored as given")
	}
	if st.saves != 2 {
		t.Errorf("saves = %d, want 2", st.saves)
	}

	reloaded := newTestService(t, st, 1)
	got, err := reloaded.Find(ctx, second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RecordedAt.Equal(second.RecordedAt.Time) {
		got.RecordedAt = second.RecordedAt
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("reloaded = %+v, want %+v", got, second)
	}
}

func TestAnnotate(t *testing.T) {
	svc := newTestService(t, newMockStore(), 1)
	ctx := context.Background()
	r, _ := svc.CreateSimulated(ctx, "PAC001")

	if err := svc.Annotate(ctx, r.ID, "tomada en reposo"); err != nil {
		t.Fatal(err)
	}
	if r.Notes != "tomada en reposo" {
		t.Errorf("Notes = %q", r.Notes)
	}
	if err := svc.Annotate(ctx, "REG99999", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// -- Queries --

func TestLatestForPatient(t *testing.T) {
	svc := newTestService(t, newMockStore(), 1)
	ctx := context.Background()

	if _, err := svc.LatestForPatient(ctx, "PAC001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	now := fixedNow
	svc.SetClock(func() time.Time { return now })
	_, _ = svc.CreateSimulated(ctx, "PAC001")
	now = now.Add(time.Hour)
	newest, _ := svc.CreateSimulated(ctx, "PAC001")
	now = now.Add(-2 * time.Hour)
	_, _ = svc.CreateSimulated(ctx, "PAC001")
	_, _ = svc.CreateSimulated(ctx, "PAC002")

	got, err := svc.LatestForPatient(ctx, "PAC001")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != newest.ID {
		t.Errorf("latest = %s, want %s", got.ID, newest.ID)
	}
	if n := len(svc.ByPatient(ctx, "PAC001")); n != 3 {
		t.Errorf("ByPatient = %d, want 3", n)
	}
}

func TestLatestForPatient_TieGoesToLaterInsert(t *testing.T) {
	svc := newTestService(t, newMockStore(), 1)
	ctx := context.Background()
	_, _ = svc.CreateSimulated(ctx, "PAC001")
	later, _ := svc.CreateSimulated(ctx, "PAC001")

	got, _ := svc.LatestForPatient(ctx, "PAC001")
	if got.ID != later.ID {
		t.Errorf("latest = %s, want %s", got.ID, later.ID)
	}
}

// -- Trends --

func TestAnalyzeTrends_InsufficientData(t *testing.T) {
	svc := newTestService(t, newMockStore(), 1)
	ctx := context.Background()

	if _, err := svc.AnalyzeTrends(ctx, "PAC001"); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("no records: err = %v", err)
	}
	_, _ = svc.CreateSimulated(ctx, "PAC001")
	if _, err := svc.AnalyzeTrends(ctx, "PAC001"); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("one record: err = %v", err)
	}
}

func TestAnalyzeTrends(t *testing.T) {
	svc := newTestService(t, newMockStore(), 1)
	ctx := context.Background()

	base := Vitals{Systolic: 120, Diastolic: 80, HeartRate: 70, Temperature: 36.8, OxygenSaturation: 98}
	next := base
	next.HeartRate = 85
	next.Temperature = 36.4

	_, _ = svc.CreateManual(ctx, "PAC001", base)
	_, _ = svc.CreateManual(ctx, "PAC001", next)

	got, err := svc.AnalyzeTrends(ctx, "PAC001")
	if err != nil {
		t.Fatal(err)
	}
	want := Trends{Pressure: Stable, HeartRate: Increased, Temperature: Decreased}
	if got != want {
		t.Errorf("trends = %+v, want %+v", got, want)
	}
}

func TestAnalyzeTrends_UsesTwoMostRecent(t *testing.T) {
	svc := newTestService(t, newMockStore(), 1)
	ctx := context.Background()

	now := fixedNow
	svc.SetClock(func() time.Time { return now })
	_, _ = svc.CreateManual(ctx, "PAC001", Vitals{Systolic: 130})
	now = now.Add(-time.Hour)
	_, _ = svc.CreateManual(ctx, "PAC001", Vitals{Systolic: 100})
	now = now.Add(-time.Hour)
	_, _ = svc.CreateManual(ctx, "PAC001", Vitals{Systolic: 200})

	got, _ := svc.AnalyzeTrends(ctx, "PAC001")
	if got.Pressure != Increased {
		t.Errorf("pressure = %s, want increased (130 vs 100)", got.Pressure)
	}
}

// -- Advice --

func TestGenerateAdvice(t *testing.T) {
	pool := make(map[string]bool, len(AdvicePool))
	for _, tip := range AdvicePool {
		pool[tip] = true
	}
	if len(pool) != 15 {
		t.Fatalf("pool has %d distinct tips, want 15", len(pool))
	}

	svc := newTestService(t, newMockStore(), 7)
	for i := 0; i < 100; i++ {
		tips := svc.GenerateAdvice()
		if len(tips) != AdviceCount {
			t.Fatalf("len = %d, want %d", len(tips), AdviceCount)
		}
		seen := map[string]bool{}
		for _, tip := range tips {
			if !pool[tip] {
				t.Fatalf("tip %q not in pool", tip)
			}
			if seen[tip] {
				t.Fatalf("duplicate tip %q", tip)
			}
			seen[tip] = true
		}
	}
}
