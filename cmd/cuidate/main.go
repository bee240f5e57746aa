package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/app"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/config"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/console"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
	"github.com/XxRubinhoxX/Cuidate-beta/pkg/pagination"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "cuidate",
		Short:        "Cuidate terminal health assistant",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}

	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(consultationsCmd())
	rootCmd.AddCommand(vitalsCmd())
	rootCmd.AddCommand(adviceCmd())
	return rootCmd
}

// withApp loads configuration, builds the application and runs fn with it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := app.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start")
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func runSession(cmd *cobra.Command) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), console.Services{
			Users:         a.Users,
			Consultations: a.Consultations,
			Records:       a.Records,
			Desk:          a.Desk,
		}, a.Logger)
		return c.Run(ctx)
	})
}

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the example doctor and patient on an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				if !a.Seeded {
					fmt.Fprintln(out, "Users already present; nothing to seed.")
					return nil
				}
				fmt.Fprintf(out, "Seeded MED001 (%s) and PAC001 (%s).\n",
					identity.ExampleDoctor.NationalID, identity.ExamplePatient.NationalID)
				return nil
			})
		},
	}
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect registered users",
	}

	var (
		kind string
		page pagination.Params
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users in storage order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var users []identity.User
				switch identity.Kind(kind) {
				case "":
					for _, d := range a.Users.ListDoctors(ctx) {
						users = append(users, d)
					}
					for _, p := range a.Users.ListPatients(ctx) {
						users = append(users, p)
					}
				case identity.KindDoctor:
					for _, d := range a.Users.ListDoctors(ctx) {
						users = append(users, d)
					}
				case identity.KindPatient:
					for _, p := range a.Users.ListPatients(ctx) {
						users = append(users, p)
					}
				default:
					return fmt.Errorf("--type must be %q or %q", identity.KindPatient, identity.KindDoctor)
				}

				res := pagination.Page(users, page)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-8s %-8s %-12s %-30s %s\n", "ID", "TYPE", "NATIONAL ID", "NAME", "REGISTERED")
				fmt.Fprintln(out, "-------- -------- ------------ ------------------------------ -------------------")
				for _, u := range res.Data {
					b := u.Base()
					fmt.Fprintf(out, "%-8s %-8s %-12s %-30s %s\n", b.ID, b.Kind, b.NationalID, u.FullName(), b.RegisteredAt)
				}
				fmt.Fprintf(out, "\n%d of %d shown.", len(res.Data), res.Total)
				p := page.Normalize()
				if p.HasPrevious() {
					fmt.Fprintf(out, " Previous page: --offset %d", p.PreviousOffset())
				}
				if res.HasMore {
					fmt.Fprintf(out, " Next page: --offset %d", p.NextOffset())
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&kind, "type", "", "Filter by user type (patient or doctor)")
	page.BindFlags(listCmd.Flags())
	cmd.AddCommand(listCmd)

	return cmd
}

func consultationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consultations",
		Short: "Inspect consultations",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a doctor's consultation counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctorID, _ := cmd.Flags().GetString("doctor")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				d, err := a.Users.Doctor(ctx, doctorID)
				if err != nil {
					return err
				}
				st := a.Consultations.StatsByDoctor(ctx, d.ID)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Consultations for Dr. %s (%s)\n", d.FullName(), d.ID)
				fmt.Fprintf(out, "  Total:       %d\n", st.Total)
				fmt.Fprintf(out, "  Pending:     %d\n", st.Pending)
				fmt.Fprintf(out, "  In progress: %d\n", st.InProgress)
				fmt.Fprintf(out, "  Completed:   %d\n", st.Completed)
				fmt.Fprintf(out, "  Cancelled:   %d\n", st.Cancelled)
				return nil
			})
		},
	}
	statsCmd.Flags().String("doctor", "", "Doctor ID")
	_ = statsCmd.MarkFlagRequired("doctor")
	cmd.AddCommand(statsCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List consultations for a doctor or a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctorID, _ := cmd.Flags().GetString("doctor")
			patientID, _ := cmd.Flags().GetString("patient")
			if (doctorID == "") == (patientID == "") {
				return fmt.Errorf("exactly one of --doctor or --patient is required")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				list := a.Consultations.ByPatient(ctx, patientID)
				if doctorID != "" {
					list = a.Consultations.ByDoctor(ctx, doctorID)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%-8s %-8s %-8s %-12s %-19s %s\n", "ID", "PATIENT", "DOCTOR", "STATUS", "REQUESTED", "REASON")
				fmt.Fprintln(out, "-------- -------- -------- ------------ ------------------- --------------------")
				for _, c := range list {
					fmt.Fprintf(out, "%-8s %-8s %-8s %-12s %-19s %s\n", c.ID, c.PatientID, c.DoctorID, c.Status, c.RequestedAt, c.Reason)
				}
				return nil
			})
		},
	}
	listCmd.Flags().String("doctor", "", "Doctor ID")
	listCmd.Flags().String("patient", "", "Patient ID")
	cmd.AddCommand(listCmd)

	return cmd
}

func vitalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitals",
		Short: "Record and analyze vital signs",
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Record a simulated reading for a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if _, err := a.Users.Patient(ctx, patientID); err != nil {
					return err
				}
				r, err := a.Records.CreateSimulated(ctx, patientID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s  %s  BP %d/%d  HR %d  T %.1f  SpO2 %d%%\n",
					r.ID, r.RecordedAt, r.Systolic, r.Diastolic, r.HeartRate, r.Temperature, r.OxygenSaturation)
				fmt.Fprintln(out, r.Evaluate())
				return nil
			})
		},
	}

	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Compare a patient's two latest readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				tr, err := a.Records.AnalyzeTrends(ctx, patientID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "pressure:    %s\n", tr.Pressure)
				fmt.Fprintf(out, "heart_rate:  %s\n", tr.HeartRate)
				fmt.Fprintf(out, "temperature: %s\n", tr.Temperature)
				return nil
			})
		},
	}

	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "Show a patient's latest reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				r, err := a.Records.LatestForPatient(ctx, patientID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s  %s  BP %d/%d  HR %d  T %.1f  SpO2 %d%%\n",
					r.ID, r.RecordedAt, r.Systolic, r.Diastolic, r.HeartRate, r.Temperature, r.OxygenSaturation)
				fmt.Fprintln(out, r.Evaluate())
				if r.Notes != "" {
					fmt.Fprintf(out, "Notes: %s\n", r.Notes)
				}
				return nil
			})
		},
	}

	for _, c := range []*cobra.Command{simulateCmd, trendsCmd, latestCmd} {
		c.Flags().String("patient", "", "Patient ID")
		_ = c.MarkFlagRequired("patient")
		cmd.AddCommand(c)
	}

	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Replace the notes on a reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			recordID, _ := cmd.Flags().GetString("record")
			notes, _ := cmd.Flags().GetString("notes")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Records.Annotate(ctx, recordID, notes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Notes saved on %s.\n", recordID)
				return nil
			})
		},
	}
	annotateCmd.Flags().String("record", "", "Record ID")
	annotateCmd.Flags().String("notes", "", "Notes text")
	_ = annotateCmd.MarkFlagRequired("record")
	cmd.AddCommand(annotateCmd)
	return cmd
}

func adviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Print five health tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				for i, tip := range a.Records.GenerateAdvice() {
					fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, tip)
				}
				return nil
			})
		},
	}
}
