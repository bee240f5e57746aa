// Package care coordinates the user and consultation services for the steps
// that touch both collections.
package care

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/consultation"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
)

// ErrNotOwner is returned when a doctor acts on another doctor's consultation.
var ErrNotOwner = errors.New("consultation belongs to another doctor")

// Users is the part of identity.Service the desk needs.
type Users interface {
	Patient(ctx context.Context, id string) (*identity.Patient, error)
	Doctor(ctx context.Context, id string) (*identity.Doctor, error)
	LinkConsultation(ctx context.Context, patientID, doctorID, consultationID string) error
	RecordHandled(ctx context.Context, doctorID, consultationID string) error
}

// Consultations is the part of consultation.Service the desk needs.
type Consultations interface {
	Create(ctx context.Context, patientID, doctorID, reason string) (*consultation.Consultation, error)
	Find(ctx context.Context, id string) (*consultation.Consultation, error)
	Attend(ctx context.Context, id string) error
	RecordDiagnosis(ctx context.Context, id, diagnosis, treatment, notes string) error
}

// Desk runs the cross-collection consultation steps.
type Desk struct {
	users         Users
	consultations Consultations
	logger        zerolog.Logger
}

func NewDesk(users Users, consultations Consultations, logger zerolog.Logger) *Desk {
	return &Desk{users: users, consultations: consultations, logger: logger}
}

// RequestConsultation opens a consultation and links it to the patient's
// history and the doctor's patient list. Both users must exist before
// anything is written.
func (d *Desk) RequestConsultation(ctx context.Context, patientID, doctorID, reason string) (*consultation.Consultation, error) {
	if _, err := d.users.Patient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("request consultation: %w", err)
	}
	if _, err := d.users.Doctor(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("request consultation: %w", err)
	}

	c, err := d.consultations.Create(ctx, patientID, doctorID, reason)
	if err != nil {
		return nil, fmt.Errorf("request consultation: %w", err)
	}
	if err := d.users.LinkConsultation(ctx, patientID, doctorID, c.ID); err != nil {
		return nil, fmt.Errorf("link consultation %s: %w", c.ID, err)
	}

	d.logger.Info().
		Str("consultation_id", c.ID).
		Str("patient_id", patientID).
		Str("doctor_id", doctorID).
		Msg("consultation requested")
	return c, nil
}

// Attend marks a consultation owned by doctorID as taken up.
func (d *Desk) Attend(ctx context.Context, doctorID, consultationID string) error {
	c, err := d.consultations.Find(ctx, consultationID)
	if err != nil {
		return err
	}
	if c.DoctorID != doctorID {
		return fmt.Errorf("attend %s by %s: %w", consultationID, doctorID, ErrNotOwner)
	}
	if err := d.consultations.Attend(ctx, consultationID); err != nil {
		return err
	}
	d.logger.Info().Str("consultation_id", consultationID).Str("doctor_id", doctorID).Msg("consultation attended")
	return nil
}

// Diagnose completes a consultation owned by doctorID and adds it to the
// doctor's handled list.
func (d *Desk) Diagnose(ctx context.Context, doctorID, consultationID, diagnosis, treatment, notes string) error {
	c, err := d.consultations.Find(ctx, consultationID)
	if err != nil {
		return err
	}
	if c.DoctorID != doctorID {
		return fmt.Errorf("diagnose %s by %s: %w", consultationID, doctorID, ErrNotOwner)
	}

	if err := d.consultations.RecordDiagnosis(ctx, consultationID, diagnosis, treatment, notes); err != nil {
		return err
	}
	if err := d.users.RecordHandled(ctx, doctorID, consultationID); err != nil {
		return fmt.Errorf("record handled %s: %w", consultationID, err)
	}
	return nil
}
