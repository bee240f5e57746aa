package console

import (
	"context"
	"errors"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
)

func (c *Console) mainMenu(ctx context.Context) error {
	for {
		c.header("CUIDATE - Your health assistant")
		c.println("1. Log in")
		c.println("2. Register")
		c.println("3. Our services")
		c.println("4. Exit")
		c.println()

		choice, err := c.ask("Choose an option")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.safely("login", func() error { return c.login(ctx) })
		case "2":
			err = c.safely("register", func() error { return c.register(ctx) })
		case "3":
			err = c.services()
		case "4":
			c.println("\nThank you for using CUIDATE. See you soon!")
			return nil
		default:
			c.println("\nInvalid option. Try again.")
		}
		if err != nil {
			return err
		}
	}
}

// askKind asks for patient or doctor. ok is false on an invalid choice.
func (c *Console) askKind() (identity.Kind, bool, error) {
	c.println("User type:")
	c.println("1. Patient")
	c.println("2. Doctor")
	choice, err := c.ask("Choose the user type")
	if err != nil {
		return "", false, err
	}
	switch choice {
	case "1":
		return identity.KindPatient, true, nil
	case "2":
		return identity.KindDoctor, true, nil
	}
	c.println("\nInvalid user type.")
	return "", false, c.pause()
}

func (c *Console) login(ctx context.Context) error {
	c.header("Log in")

	kind, ok, err := c.askKind()
	if err != nil || !ok {
		return err
	}
	nationalID, err := c.ask("National ID")
	if err != nil {
		return err
	}
	password, err := c.ask("Password")
	if err != nil {
		return err
	}

	user, err := c.svc.Users.Authenticate(ctx, nationalID, password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		c.println("\nInvalid national ID or password.")
		return c.pause()
	}
	if err != nil {
		return err
	}
	if user.Base().Kind != kind {
		c.printf("\nThis account is not registered as a %s.\n", kind)
		return c.pause()
	}

	c.printf("\nWelcome, %s!\n", user.FullName())
	c.logger.Info().Str("user_id", user.Base().ID).Msg("logged in")

	switch u := user.(type) {
	case *identity.Patient:
		return c.patientMenu(ctx, u)
	case *identity.Doctor:
		return c.doctorMenu(ctx, u)
	}
	return nil
}

func (c *Console) register(ctx context.Context) error {
	c.header("Register")

	kind, ok, err := c.askKind()
	if err != nil || !ok {
		return err
	}

	var p identity.Profile
	if p.FirstName, err = c.askValid("First name", identity.ValidateName); err != nil {
		return err
	}
	if p.LastName, err = c.askValid("Last name", identity.ValidateName); err != nil {
		return err
	}
	if p.NationalID, err = c.askValid("National ID", identity.ValidateNationalID); err != nil {
		return err
	}
	if p.Email, err = c.ask("Email"); err != nil {
		return err
	}
	if p.Password, err = c.ask("Password"); err != nil {
		return err
	}

	var user identity.User
	switch kind {
	case identity.KindPatient:
		pp := identity.PatientProfile{Profile: p}
		if pp.Age, err = c.askInt("Age"); err != nil {
			return err
		}
		if pp.Gender, err = c.ask("Gender"); err != nil {
			return err
		}
		if pp.Address, err = c.ask("Address"); err != nil {
			return err
		}
		if pp.Phone, err = c.askValid("Phone", identity.ValidatePhone); err != nil {
			return err
		}
		if pp.BloodType, err = c.ask("Blood type"); err != nil {
			return err
		}
		user, err = c.svc.Users.RegisterPatient(ctx, pp)
	case identity.KindDoctor:
		dp := identity.DoctorProfile{Profile: p}
		if dp.Specialty, err = c.askValid("Specialty", identity.ValidateSpecialty); err != nil {
			return err
		}
		if dp.License, err = c.ask("License number"); err != nil {
			return err
		}
		if dp.YearsExperience, err = c.askInt("Years of experience"); err != nil {
			return err
		}
		user, err = c.svc.Users.RegisterDoctor(ctx, dp)
	}

	if errors.Is(err, identity.ErrDuplicateNationalID) {
		c.println("\nA user with that national ID is already registered.")
		return c.pause()
	}
	if err != nil {
		return err
	}
	c.printf("\nRegistration complete! Your ID is %s.\n", user.Base().ID)
	return c.pause()
}

func (c *Console) services() error {
	c.header("Our services")
	c.println("CUIDATE offers:")
	c.println()
	c.println("  * Vital sign monitoring")
	c.println("  * Online medical consultations")
	c.println("  * Digital consultation history")
	c.println("  * Personal health advice")
	c.println("  * Treatment follow-up")
	c.println("  * Preventive health alerts")
	c.println("\nRegister to use every service!")
	return c.pause()
}
