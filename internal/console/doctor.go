package console

import (
	"context"
	"errors"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/care"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/consultation"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
)

// recentHandled is how many completed consultations the history shows.
const recentHandled = 5

func (c *Console) doctorMenu(ctx context.Context, d *identity.Doctor) error {
	for {
		c.header("Doctor panel - Dr. " + d.FullName())
		c.println("1. Assigned patients")
		c.println("2. Open consultations")
		c.println("3. Attend a consultation")
		c.println("4. Record a diagnosis")
		c.println("5. Handled history")
		c.println("6. Update profile")
		c.println("7. Log out")
		c.println()

		choice, err := c.ask("Choose an option")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.safely("assigned patients", func() error { return c.assignedPatients(ctx, d) })
		case "2":
			err = c.safely("open consultations", func() error { return c.openConsultations(ctx, d) })
		case "3":
			err = c.safely("attend consultation", func() error { return c.attend(ctx, d) })
		case "4":
			err = c.safely("record diagnosis", func() error { return c.recordDiagnosis(ctx, d) })
		case "5":
			err = c.safely("handled history", func() error { return c.handledHistory(ctx, d) })
		case "6":
			err = c.safely("update doctor", func() error { return c.updateDoctor(ctx, d) })
		case "7":
			c.println("\nLogging out...")
			return nil
		default:
			c.println("\nInvalid option.")
			err = c.pause()
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) assignedPatients(ctx context.Context, d *identity.Doctor) error {
	c.header("Assigned patients")

	if len(d.AssignedPatients) == 0 {
		c.println("You have no assigned patients yet.")
		return c.pause()
	}
	c.printf("Total patients: %d\n", len(d.AssignedPatients))
	for _, id := range d.AssignedPatients {
		p, err := c.svc.Users.Patient(ctx, id)
		if err != nil {
			continue
		}
		c.println()
		c.println(rule)
		c.printf("ID: %s\n", p.ID)
		c.printf("Name: %s\n", p.FullName())
		c.printf("Age: %d\n", p.Age)
		c.printf("Gender: %s\n", p.Gender)
		c.printf("Phone: %s\n", p.Phone)
		c.printf("Blood type: %s\n", p.BloodType)
		if r, err := c.svc.Records.LatestForPatient(ctx, p.ID); err == nil {
			c.printf("Last reading: %s (%s)\n", r.RecordedAt, r.Evaluate())
		}
	}
	return c.pause()
}

// openConsultations lists the doctor's pending consultations followed by the
// ones already in progress.
func (c *Console) openConsultations(ctx context.Context, d *identity.Doctor) error {
	c.header("Open consultations")

	list := c.svc.Consultations.PendingByDoctor(ctx, d.ID)
	for _, con := range c.svc.Consultations.ByDoctor(ctx, d.ID) {
		if con.Status == consultation.StatusInProgress {
			list = append(list, con)
		}
	}
	if len(list) == 0 {
		c.println("You have no open consultations.")
		return c.pause()
	}
	for _, con := range list {
		c.println()
		c.println(rule)
		c.printf("ID: %s\n", con.ID)
		c.printf("Patient: %s\n", c.nameOf(ctx, con.PatientID))
		c.printf("Requested: %s\n", con.RequestedAt)
		c.printf("Reason: %s\n", con.Reason)
		c.printf("Status: %s\n", con.Status)
	}
	return c.pause()
}

// askOpenConsultation reads a consultation ID and returns it when it belongs
// to d and is still open. Otherwise it reports why and returns nil.
func (c *Console) askOpenConsultation(ctx context.Context, d *identity.Doctor) (*consultation.Consultation, error) {
	id, err := c.ask("Consultation ID")
	if err != nil {
		return nil, err
	}
	con, err := c.svc.Consultations.Find(ctx, id)
	switch {
	case errors.Is(err, consultation.ErrNotFound):
		c.println("\nConsultation not found.")
		return nil, c.pause()
	case err != nil:
		return nil, err
	case con.DoctorID != d.ID:
		c.println("\nThis consultation is not assigned to you.")
		return nil, c.pause()
	case con.Status.Terminal():
		c.printf("\nThis consultation is already %s.\n", con.Status)
		return nil, c.pause()
	}
	return con, nil
}

func (c *Console) attend(ctx context.Context, d *identity.Doctor) error {
	c.header("Attend a consultation")

	con, err := c.askOpenConsultation(ctx, d)
	if con == nil || err != nil {
		return err
	}

	err = c.svc.Desk.Attend(ctx, d.ID, con.ID)
	switch {
	case errors.Is(err, care.ErrNotOwner), errors.Is(err, consultation.ErrInvalidTransition):
		c.printf("\nCould not attend the consultation: %v.\n", err)
	case err != nil:
		return err
	default:
		c.printf("\nAttending %s with %s since %s.\n", con.ID, c.nameOf(ctx, con.PatientID), con.AttendedAt)
	}
	return c.pause()
}

func (c *Console) recordDiagnosis(ctx context.Context, d *identity.Doctor) error {
	c.header("Record a diagnosis")

	con, err := c.askOpenConsultation(ctx, d)
	if con == nil || err != nil {
		return err
	}

	c.printf("\nPatient: %s\n", c.nameOf(ctx, con.PatientID))
	c.printf("Reason: %s\n\n", con.Reason)

	diagnosis, err := c.ask("Diagnosis")
	if err != nil {
		return err
	}
	treatment, err := c.ask("Treatment")
	if err != nil {
		return err
	}
	notes, err := c.ask("Notes")
	if err != nil {
		return err
	}
	if diagnosis == "" {
		c.println("\nA diagnosis is required.")
		return c.pause()
	}

	err = c.svc.Desk.Diagnose(ctx, d.ID, con.ID, diagnosis, treatment, notes)
	switch {
	case errors.Is(err, care.ErrNotOwner), errors.Is(err, consultation.ErrInvalidTransition):
		c.printf("\nCould not record the diagnosis: %v.\n", err)
	case err != nil:
		return err
	default:
		c.println("\nDiagnosis recorded.")
	}
	return c.pause()
}

func (c *Console) handledHistory(ctx context.Context, d *identity.Doctor) error {
	c.header("Handled consultations")

	done := c.svc.Consultations.CompletedByDoctor(ctx, d.ID)
	if len(done) == 0 {
		c.println("You have not completed any consultations yet.")
		return c.pause()
	}

	st := c.svc.Consultations.StatsByDoctor(ctx, d.ID)
	c.println("Statistics:")
	c.printf("  Total consultations: %d\n", st.Total)
	c.printf("  Completed: %d\n", st.Completed)
	c.printf("  Pending: %d\n", st.Pending)
	c.printf("  In progress: %d\n", st.InProgress)
	c.printf("  Cancelled: %d\n", st.Cancelled)

	c.println()
	c.println(rule)
	c.println("Latest completed consultations:")
	if len(done) > recentHandled {
		done = done[len(done)-recentHandled:]
	}
	for _, con := range done {
		c.println()
		c.println(rule)
		c.printf("ID: %s\n", con.ID)
		c.printf("Patient: %s\n", c.nameOf(ctx, con.PatientID))
		if con.AttendedAt != nil {
			c.printf("Attended: %s\n", con.AttendedAt)
		}
		c.printf("Diagnosis: %s\n", con.Diagnosis)
	}
	return c.pause()
}

func (c *Console) updateDoctor(ctx context.Context, d *identity.Doctor) error {
	c.header("Update professional profile")
	c.println("Leave blank to keep the current value.")
	c.println()

	upd, err := c.askProfileUpdate(&d.Account)
	if err != nil {
		return err
	}
	specialty, err := c.askOptional("Specialty", d.Specialty, identity.ValidateSpecialty)
	if err != nil {
		return err
	}

	d.UpdateProfile(upd)
	d.UpdateProfessional(identity.ProfessionalUpdate{Specialty: specialty})
	if err := c.svc.Users.Update(ctx, d); err != nil {
		return err
	}
	c.println("\nYour profile was updated.")
	return c.pause()
}
