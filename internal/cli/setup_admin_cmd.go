package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type credentials struct {
	Username string
	Password string
}

func newSetupAdminCmd(app *App) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "setup-admin",
		Short: "Create the first administrator on an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Username == "" || creds.Password == "" {
				if !app.isTerminal() {
					return errMissingCredentials
				}
				if err := app.prompt(&creds); err != nil {
					return err
				}
			}

			res, err := app.Auth.SetupAdmin(cmd.Context(), strings.TrimSpace(creds.Username), creds.Password)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s administrator %s created (id %d)\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(res.Employee.Username), res.Employee.ID)
			if app.Config.JWTSecret != "" {
				fmt.Fprintf(out, "%s %s\n", formatter.Dim("token:"), res.Token)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Username, "username", "", "administrator username")
	cmd.Flags().StringVar(&creds.Password, "password", "", "administrator password")
	return cmd
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptCredentials asks for whichever of username and password is missing.
func promptCredentials(c *credentials) error {
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	var fields []huh.Field
	if c.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Administrator username").
			Value(&c.Username).
			Validate(required("username")))
	}
	if c.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password).
			Validate(required("password")))
	}

	err := huh.NewForm(huh.NewGroup(fields...)).WithTheme(attendanceHuhTheme()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("setup cancelled")
	}
	return err
}

// attendanceHuhTheme styles huh forms with the CLI palette.
func attendanceHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	dim := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	fg := lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Focused.Title = accent.Bold(true)
	t.Focused.Description = dim
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Text = fg
	t.Focused.TextInput.Placeholder = dim

	t.Blurred.Title = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim
	return t
}
