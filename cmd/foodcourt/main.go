package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naveenspark/foodcourt/internal/config"
	"github.com/naveenspark/foodcourt/internal/logging"
	"github.com/naveenspark/foodcourt/internal/session"
	"github.com/naveenspark/foodcourt/internal/tui"
	"github.com/naveenspark/foodcourt/pkg/client"
	"github.com/naveenspark/foodcourt/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foodcourt",
		Short: "Order food from the terminal",
		Long: `foodcourt is a terminal client for the foodcourt ordering backend.

Run it without arguments to open the interactive app.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		versionCmd(),
	)

	return rootCmd
}

// stack is the shared wiring every command starts from.
type stack struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *session.FileStore
	client  *client.Client
	session *session.Session
}

// newStack loads config and wires the store, client and session together.
// When events is non-nil, session transitions are sent on it without
// blocking; a full channel drops the event.
func newStack(events chan<- session.Event) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.NewOrNop(cfg.LogPath(), cfg.LogLevel)
	store := session.NewFileStore(cfg.SessionPath())

	var sess *session.Session
	c := client.New(cfg.APIURL, store,
		client.WithTimeout(cfg.HTTPTimeout()),
		client.WithLogger(logger.Named("client")),
		client.WithSessionInvalidHandler(func() { sess.Invalidate() }),
	)

	opts := []session.Option{session.WithLogger(logger.Named("session"))}
	if events != nil {
		opts = append(opts, session.WithNotify(func(e session.Event) {
			select {
			case events <- e:
			default:
				logger.Warn("session event dropped", zap.Stringer("event", e))
			}
		}))
	}
	sess = session.New(store, c, opts...)

	return &stack{cfg: cfg, logger: logger, store: store, client: c, session: sess}, nil
}

func runTUI() error {
	events := make(chan session.Event, 8)
	st, err := newStack(events)
	if err != nil {
		return err
	}
	defer st.logger.Sync() //nolint:errcheck // best-effort flush

	st.logger.Info("starting", zap.String("version", version), zap.String("api_url", st.cfg.APIURL))

	app := tui.NewApp(st.client, st.session, events, st.cfg.APIURL)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func loginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with your foodcourt username and password.

The password is read from standard input. The session is kept for 24 hours.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStack(nil)
			if err != nil {
				return err
			}
			defer st.logger.Sync() //nolint:errcheck

			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())

			if username == "" {
				if username, err = prompt(out, in, "Username: "); err != nil {
					return err
				}
			}
			password, err := prompt(out, in, "Password: ")
			if err != nil {
				return err
			}

			st.session.Init()
			creds := domain.Credentials{Username: username, Password: password}
			if err := st.session.Login(cmdContext(cmd), creds); err != nil {
				return errors.New(client.Message(err, "login failed"))
			}

			id, _ := st.session.Identity()
			success(out, fmt.Sprintf("Signed in as %s (%s)", id.Username, id.Role))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to sign in with")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStack(nil)
			if err != nil {
				return err
			}
			defer st.logger.Sync() //nolint:errcheck

			st.session.Logout()
			info(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStack(nil)
			if err != nil {
				return err
			}
			defer st.logger.Sync() //nolint:errcheck

			out := cmd.OutOrStdout()
			st.session.Init()
			id, ok := st.session.Identity()
			if !ok {
				printSignedOut(out)
				return nil
			}

			fmt.Fprintf(out, "  Username: %s\n", id.Username)
			fmt.Fprintf(out, "  Role:     %s\n", id.Role)
			if id.HasCountry() {
				country := domain.CountryName(id.CountryID)
				if country == "" {
					country = fmt.Sprintf("#%d", id.CountryID)
				}
				fmt.Fprintf(out, "  Country:  %s\n", country)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return
			}
			out := cmd.OutOrStdout()
			printBanner(out)
			fmt.Fprintf(out, "\n  Version:    %s\n", version)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}

// prompt writes label and reads one trimmed line. A final line without a
// newline is accepted.
func prompt(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// cmdContext falls back to Background when the command runs outside Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
