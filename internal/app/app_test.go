package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/config"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
)

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:               "test",
		LogLevel:          "info",
		DataDir:           filepath.Join(t.TempDir(), "data"),
		UsersFile:         "usuarios.json",
		ConsultationsFile: "consultas.json",
		RecordsFile:       "registros.json",
		StoreDriver:       config.DriverFile,
	}
}

func TestNewLogger_SessionID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(fileConfig(t), &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("hello")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, buf.String())
	}
	if id, _ := line["session_id"].(string); len(id) != 36 {
		t.Errorf("session_id = %v, want a uuid", line["session_id"])
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	cfg := fileConfig(t)
	cfg.LogLevel = "chatty"
	if _, err := NewLogger(cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected error for bad log level")
	}
}

func TestNew_FileStoreSeedsOnce(t *testing.T) {
	cfg := fileConfig(t)
	ctx := context.Background()

	a, err := New(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if !a.Seeded {
		t.Error("first run should seed")
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "usuarios.json")); err != nil {
		t.Errorf("users file not written: %v", err)
	}

	c, err := a.Desk.RequestConsultation(ctx, "PAC001", "MED001", "Dolor")
	if err != nil {
		t.Fatal(err)
	}

	again, err := New(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if again.Seeded {
		t.Error("second run must not seed")
	}
	p, err := again.Users.Patient(ctx, "PAC001")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Consultations) != 1 || p.Consultations[0] != c.ID {
		t.Errorf("reloaded patient consultations = %v", p.Consultations)
	}
	if _, err := again.Consultations.Find(ctx, c.ID); err != nil {
		t.Errorf("reloaded consultation: %v", err)
	}
}

func TestNew_CorruptUsersFileIsNotReseeded(t *testing.T) {
	cfg := fileConfig(t)
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Path(cfg.UsersFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if a.Seeded {
		t.Error("a corrupt users file must not trigger seeding")
	}
	if _, err := a.Users.FindByID(context.Background(), "MED001"); !errors.Is(err, identity.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	matches, _ := filepath.Glob(cfg.Path(cfg.UsersFile) + ".corrupt-*")
	if len(matches) != 1 {
		t.Errorf("backups = %v, want one", matches)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := fileConfig(t)
	cfg.StoreDriver = "sqlite"
	if _, err := New(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestNew_Postgres(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	cfg := fileConfig(t)
	cfg.StoreDriver = config.DriverPostgres
	cfg.DatabaseURL = url
	cfg.DBMaxConns = 2
	cfg.DBMinConns = 1

	a, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if _, err := a.Users.FindByID(context.Background(), "MED001"); err != nil {
		t.Errorf("MED001 missing after postgres bootstrap: %v", err)
	}
}
