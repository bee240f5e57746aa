package console

import (
	"context"
	"errors"
	"strconv"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/monitoring"
)

func (c *Console) patientMenu(ctx context.Context, p *identity.Patient) error {
	for {
		c.header("Patient panel - " + p.FullName())
		c.println("1. Health monitoring")
		c.println("2. Request an online consultation")
		c.println("3. Consultation history")
		c.println("4. Health advice")
		c.println("5. Update personal data")
		c.println("6. Log out")
		c.println()

		choice, err := c.ask("Choose an option")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.safely("monitor", func() error { return c.monitor(ctx, p) })
		case "2":
			err = c.safely("request consultation", func() error { return c.requestConsultation(ctx, p) })
		case "3":
			err = c.safely("patient history", func() error { return c.patientHistory(ctx, p) })
		case "4":
			err = c.advice()
		case "5":
			err = c.safely("update patient", func() error { return c.updatePatient(ctx, p) })
		case "6":
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

func (c *Console) monitor(ctx context.Context, p *identity.Patient) error {
	c.header("Health monitoring")
	c.println("Taking a vital signs reading...")
	c.println()

	r, err := c.svc.Records.CreateSimulated(ctx, p.ID)
	if err != nil {
		return err
	}
	c.printVitals(r)

	trends, err := c.svc.Records.AnalyzeTrends(ctx, p.ID)
	switch {
	case errors.Is(err, monitoring.ErrInsufficientData):
	case err != nil:
		return err
	default:
		c.println("\nTrends:")
		c.printf("  * Blood pressure: %s\n", trends.Pressure)
		c.printf("  * Heart rate: %s\n", trends.HeartRate)
		c.printf("  * Temperature: %s\n", trends.Temperature)
	}
	return c.pause()
}

func (c *Console) printVitals(r *monitoring.HealthRecord) {
	c.printf("VITAL SIGNS - %s\n", r.RecordedAt)
	c.println(rule)
	c.printf("Blood pressure: %d/%d mmHg\n", r.Systolic, r.Diastolic)
	c.printf("Heart rate: %d bpm\n", r.HeartRate)
	c.printf("Temperature: %s°C\n", strconv.FormatFloat(r.Temperature, 'f', 1, 64))
	c.printf("Oxygen saturation: %d%%\n", r.OxygenSaturation)
	c.println(rule)
	c.printf("\nAssessment: %s\n", r.Evaluate())
}

func (c *Console) requestConsultation(ctx context.Context, p *identity.Patient) error {
	c.header("Request an online consultation")

	doctors := c.svc.Users.ListDoctors(ctx)
	if len(doctors) == 0 {
		c.println("No doctors are available right now.")
		return c.pause()
	}

	c.println("Available doctors:")
	c.println()
	for i, d := range doctors {
		c.printf("%d. Dr. %s\n", i+1, d.FullName())
		c.printf("   Specialty: %s\n", d.Specialty)
		c.printf("   Experience: %d years\n\n", d.YearsExperience)
	}

	choice, err := c.ask("Choose a doctor (number)")
	if err != nil {
		return err
	}
	n, convErr := strconv.Atoi(choice)
	if convErr != nil || n < 1 || n > len(doctors) {
		c.println("\nInvalid selection.")
		return c.pause()
	}

	c.println()
	reason, err := c.ask("Reason for the consultation")
	if err != nil {
		return err
	}
	if reason == "" {
		c.println("\nA reason is required.")
		return c.pause()
	}

	con, err := c.svc.Desk.RequestConsultation(ctx, p.ID, doctors[n-1].ID, reason)
	if err != nil {
		return err
	}
	c.println("\nConsultation created!")
	c.printf("Consultation ID: %s\n", con.ID)
	c.printf("Status: %s\n", con.Status)
	return c.pause()
}

func (c *Console) patientHistory(ctx context.Context, p *identity.Patient) error {
	c.header("Consultation history")

	list := c.svc.Consultations.ByPatient(ctx, p.ID)
	if len(list) == 0 {
		c.println("You have no consultations yet.")
		return c.pause()
	}
	for _, con := range list {
		c.println()
		c.println(rule)
		c.printf("ID: %s\n", con.ID)
		c.printf("Doctor: Dr. %s\n", c.nameOf(ctx, con.DoctorID))
		c.printf("Date: %s\n", con.RequestedAt)
		c.printf("Reason: %s\n", con.Reason)
		c.printf("Status: %s\n", con.Status)
		if con.Diagnosis != "" {
			c.printf("\nDiagnosis: %s\n", con.Diagnosis)
		}
		if con.Treatment != "" {
			c.printf("Treatment: %s\n", con.Treatment)
		}
		if con.Notes != "" {
			c.printf("Notes: %s\n", con.Notes)
		}
	}
	return c.pause()
}

func (c *Console) advice() error {
	c.header("Health advice")
	c.println("Tips for a healthy life:")
	c.println()
	for i, tip := range c.svc.Records.GenerateAdvice() {
		c.printf("%d. %s\n", i+1, tip)
	}
	return c.pause()
}

func (c *Console) updatePatient(ctx context.Context, p *identity.Patient) error {
	c.header("Update personal data")
	c.println("Leave blank to keep the current value.")
	c.println()

	upd, err := c.askProfileUpdate(&p.Account)
	if err != nil {
		return err
	}
	phone, err := c.askOptional("Phone", p.Phone, identity.ValidatePhone)
	if err != nil {
		return err
	}

	p.UpdateProfile(upd)
	p.UpdateMedical(identity.MedicalUpdate{Phone: phone})
	if err := c.svc.Users.Update(ctx, p); err != nil {
		return err
	}
	c.println("\nYour data was updated.")
	return c.pause()
}

// askProfileUpdate prompts for the editable account fields.
func (c *Console) askProfileUpdate(a *identity.Account) (identity.ProfileUpdate, error) {
	var (
		u   identity.ProfileUpdate
		err error
	)
	if u.FirstName, err = c.askOptional("First name", a.FirstName, identity.ValidateName); err != nil {
		return u, err
	}
	if u.LastName, err = c.askOptional("Last name", a.LastName, identity.ValidateName); err != nil {
		return u, err
	}
	if u.Email, err = c.askOptional("Email", a.Email, nil); err != nil {
		return u, err
	}
	return u, nil
}

// nameOf returns the full name of a user, or N/A.
func (c *Console) nameOf(ctx context.Context, id string) string {
	u, err := c.svc.Users.FindByID(ctx, id)
	if err != nil {
		return "N/A"
	}
	return u.FullName()
}
