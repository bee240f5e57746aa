package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/care"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/consultation"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/monitoring"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
)

type memStore struct {
	docs []store.Document
}

func (m *memStore) Load(_ context.Context) ([]store.Document, error) {
	if m.docs == nil {
		return nil, store.ErrNoDocument
	}
	return m.docs, nil
}

func (m *memStore) Save(_ context.Context, docs []store.Document) error {
	m.docs = docs
	return nil
}

func newServices(t *testing.T) Services {
	t.Helper()
	ctx := context.Background()
	users := identity.NewService(ctx, &memStore{}, zerolog.Nop())
	users.Seed(ctx)
	consultations := consultation.NewService(ctx, &memStore{}, zerolog.Nop())
	return Services{
		Users:         users,
		Consultations: consultations,
		Records:       monitoring.NewService(ctx, &memStore{}, zerolog.Nop()),
		Desk:          care.NewDesk(users, consultations, zerolog.Nop()),
	}
}

// run feeds the lines to a console and returns everything it printed.
func run(t *testing.T, svc Services, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := New(in, &out, svc, zerolog.Nop()).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestRun_Exit(t *testing.T) {
	out := run(t, newServices(t), "4")
	if !strings.Contains(out, "Thank you for using CUIDATE") {
		t.Errorf("missing goodbye in output:\n%s", out)
	}
}

func TestRun_EOFEndsSession(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, newServices(t), zerolog.Nop())
	if err := c.Run(context.Background()); err != nil {
		t.Errorf("Run on empty input = %v, want nil", err)
	}
}

func TestRun_InvalidOption(t *testing.T) {
	out := run(t, newServices(t), "9", "4")
	if !strings.Contains(out, "Invalid option") {
		t.Errorf("expected invalid option message:\n%s", out)
	}
}

func TestRegisterPatient_RepromptsInvalidInput(t *testing.T) {
	svc := newServices(t)
	out := run(t, svc,
		"2", "1",
		"Ana2", "Ana",
		"Ruiz",
		"123", "1234567",
		"ana@example.com", "clave",
		"treinta", "30",
		"Femenino", "Calle 9",
		"300abc", "3001112233",
		"A+",
		"",
		"4",
	)

	for _, msg := range []string{
		"First name cannot contain numbers",
		"National ID must have at least 6 digits",
		"Please enter a whole number",
		"Phone must contain only numbers",
		"Your ID is PAC002",
	} {
		if !strings.Contains(out, msg) {
			t.Errorf("output missing %q", msg)
		}
	}

	u, err := svc.Users.FindByNationalID(context.Background(), "1234567")
	if err != nil {
		t.Fatalf("registered patient not found: %v", err)
	}
	p := u.(*identity.Patient)
	if p.FirstName != "Ana" || p.Age != 30 || p.Phone != "3001112233" {
		t.Errorf("patient = %+v", p)
	}
}

func TestRegister_DuplicateNationalID(t *testing.T) {
	out := run(t, newServices(t),
		"2", "2",
		"Luis", "Mora",
		"1234567890",
		"", "x",
		"Cardiología", "RM-1", "3",
		"",
		"4",
	)
	if !strings.Contains(out, "already registered") {
		t.Errorf("expected duplicate message:\n%s", out)
	}
}

func TestLogin_WrongKindAndBadPassword(t *testing.T) {
	out := run(t, newServices(t),
		"1", "2", "0987654321", "paciente123", "",
		"1", "1", "0987654321", "wrong", "",
		"4",
	)
	if !strings.Contains(out, "not registered as a doctor") {
		t.Errorf("expected kind mismatch message:\n%s", out)
	}
	if !strings.Contains(out, "Invalid national ID or password") {
		t.Errorf("expected credential message:\n%s", out)
	}
}

func TestPatient_RequestConsultationAndMonitor(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	out := run(t, svc,
		"1", "1", "0987654321", "paciente123",
		"2", "1", "Dolor de cabeza", "",
		"1", "",
		"1", "",
		"3", "",
		"4", "",
		"6",
		"4",
	)

	list := svc.Consultations.ByPatient(ctx, "PAC001")
	if len(list) != 1 || list[0].DoctorID != "MED001" || list[0].Reason != "Dolor de cabeza" {
		t.Fatalf("consultations = %+v", list)
	}
	p, _ := svc.Users.Patient(ctx, "PAC001")
	if len(p.Consultations) != 1 {
		t.Errorf("patient history = %v", p.Consultations)
	}
	if n := len(svc.Records.ByPatient(ctx, "PAC001")); n != 2 {
		t.Errorf("records = %d, want 2", n)
	}
	for _, msg := range []string{"Consultation ID: CON0001", "Assessment:", "Trends:", "Dr. Carlos Gaitan", "Tips for a healthy life"} {
		if !strings.Contains(out, msg) {
			t.Errorf("output missing %q", msg)
		}
	}
}

func TestDoctor_RecordDiagnosis(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	con, err := svc.Desk.RequestConsultation(ctx, "PAC001", "MED001", "Fiebre")
	if err != nil {
		t.Fatal(err)
	}

	out := run(t, svc,
		"1", "2", "1234567890", "medico123",
		"1", "",
		"2", "",
		"3", con.ID, "",
		"4", con.ID, "Gripe", "Reposo", "", "",
		"4", con.ID, "",
		"3", con.ID, "",
		"5", "",
		"7",
		"4",
	)

	if con.Status != consultation.StatusCompleted || con.Diagnosis != "Gripe" {
		t.Errorf("consultation = %+v", con)
	}
	if con.AttendedAt == nil {
		t.Error("AttendedAt should be set by the attend step")
	}
	d, _ := svc.Users.Doctor(ctx, "MED001")
	if len(d.HandledConsultations) != 1 {
		t.Errorf("handled = %v", d.HandledConsultations)
	}
	for _, msg := range []string{"lana ruedas", "Attending " + con.ID, "Diagnosis recorded", "already completed", "Completed: 1"} {
		if !strings.Contains(out, msg) {
			t.Errorf("output missing %q", msg)
		}
	}
}

func TestDoctor_AttendShowsInOpenList(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	con, err := svc.Desk.RequestConsultation(ctx, "PAC001", "MED001", "Mareo")
	if err != nil {
		t.Fatal(err)
	}

	out := run(t, svc,
		"1", "2", "1234567890", "medico123",
		"3", "CON9999", "",
		"3", con.ID, "",
		"2", "",
		"7",
		"4",
	)

	if con.Status != consultation.StatusInProgress {
		t.Errorf("Status = %s, want in_progress", con.Status)
	}
	for _, msg := range []string{"Consultation not found", "Attending " + con.ID, "Status: in_progress"} {
		if !strings.Contains(out, msg) {
			t.Errorf("output missing %q", msg)
		}
	}
}

func TestUpdateDoctor_KeepsBlankFields(t *testing.T) {
	svc := newServices(t)
	run(t, svc,
		"1", "2", "1234567890", "medico123",
		"6", "", "Gaitán", "", "12", "Cardiología", "",
		"7",
		"4",
	)

	d, _ := svc.Users.Doctor(context.Background(), "MED001")
	if d.FirstName != "Carlos" || d.LastName != "Gaitán" {
		t.Errorf("name = %s %s", d.FirstName, d.LastName)
	}
	if d.Specialty != "Cardiología" {
		t.Errorf("specialty = %s, want Cardiología", d.Specialty)
	}
}

func TestPanicInActionIsRecovered(t *testing.T) {
	svc := newServices(t)
	svc.Records = nil

	out := run(t, svc,
		"1", "1", "0987654321", "paciente123",
		"1",
		"6",
		"4",
	)
	if !strings.Contains(out, "Something went wrong") {
		t.Errorf("expected recovery message:\n%s", out)
	}
	if !strings.Contains(out, "Thank you for using CUIDATE") {
		t.Error("session should continue after a recovered panic")
	}
}
