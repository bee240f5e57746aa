// Package console is the interactive terminal front end.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/care"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/consultation"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/monitoring"
)

const rule = "============================================================"

// Services are the collections the console drives.
type Services struct {
	Users         *identity.Service
	Consultations *consultation.Service
	Records       *monitoring.Service
	Desk          *care.Desk
}

// Console reads choices from in and writes menus to out.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	svc    Services
	logger zerolog.Logger
}

func New(in io.Reader, out io.Writer, svc Services, logger zerolog.Logger) *Console {
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		svc:    svc,
		logger: logger.With().Str("component", "console").Logger(),
	}
}

// Run shows the main menu until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	err := c.mainMenu(ctx)
	if errors.Is(err, io.EOF) {
		c.println()
		return nil
	}
	return err
}

// -- Output --

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) header(title string) {
	c.println()
	c.println(rule)
	pad := (len(rule) - len([]rune(title))) / 2
	if pad < 0 {
		pad = 0
	}
	c.println(strings.Repeat(" ", pad) + title)
	c.println(rule)
	c.println()
}

// -- Input --

// ask prints label and returns the next trimmed line. It returns io.EOF
// once input is exhausted.
func (c *Console) ask(label string) (string, error) {
	c.printf("%s: ", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) pause() error {
	_, err := c.ask("\nPress Enter to continue...")
	return err
}

// askValid re-prompts until validate accepts the answer.
func (c *Console) askValid(label string, validate func(string) error) (string, error) {
	for {
		v, err := c.ask(label)
		if err != nil {
			return "", err
		}
		if verr := validate(v); verr != nil {
			c.printf("\n%s %v.\n", label, verr)
			continue
		}
		return v, nil
	}
}

// askOptional shows current and returns "" when the answer is left blank.
// A non-blank answer is re-prompted until validate accepts it or the user
// blanks it.
func (c *Console) askOptional(label, current string, validate func(string) error) (string, error) {
	prompt := fmt.Sprintf("%s (%s)", label, current)
	for {
		v, err := c.ask(prompt)
		if err != nil || v == "" {
			return "", err
		}
		if validate == nil {
			return v, nil
		}
		if verr := validate(v); verr != nil {
			c.printf("\n%s %v.\n", label, verr)
			continue
		}
		return v, nil
	}
}

// askInt re-prompts until the answer is a non-negative integer.
func (c *Console) askInt(label string) (int, error) {
	for {
		v, err := c.ask(label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 0 {
			c.println("\nPlease enter a whole number.")
			continue
		}
		return n, nil
	}
}

// -- Recovery --

// safely runs an action, turning a panic into a logged error so the menu
// loop keeps going. io.EOF passes through.
func (c *Console) safely(action string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var stack [4096]byte
			n := runtime.Stack(stack[:], false)

			c.logger.Error().
				Str("action", action).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(stack[:n])).
				Msg("panic recovered")

			c.println("\nSomething went wrong. Returning to the menu.")
			err = nil
		}
	}()
	return fn()
}
