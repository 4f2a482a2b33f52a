package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blackwell-systems/libractl/internal/library"
)

func newLoginCmd() *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the library gateway",
		Long: `Sign in and store the session token for later commands.

The password is read without echo from the terminal, or from stdin with
--password-stdin.

Examples:
  libractl login --email ada@example.org
  echo "$PW" | libractl login --email ada@example.org --password-stdin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				fmt.Print("Email: ")
				line, _ := reader.ReadString('\n')
				email = strings.TrimSpace(line)
			}

			password, err := readPassword(reader, passwordStdin)
			if err != nil {
				return err
			}

			creds := library.Credentials{Email: strings.TrimSpace(email), Password: password}
			if err := creds.Validate(); err != nil {
				return err
			}

			res, err := client.Login(cmd.Context(), creds)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			sess, err := store.Login(res.Token, res.User)
			if err != nil {
				return err
			}

			ok("Logged in as %s", displayName(sess.User))
			if !sess.ExpiresAt.IsZero() {
				printField("expires", sess.ExpiresAt.Local().Format("Jan 2, 2006 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func readPassword(reader *bufio.Reader, fromStdin bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if fromStdin || !term.IsTerminal(fd) {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Print("Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if client.HasToken() {
				// The local session goes regardless of what the gateway says.
				if err := client.Logout(cmd.Context()); err != nil {
					logger.Warn().Err(err).Msg("gateway logout failed")
				}
			}
			if err := store.Logout(); err != nil {
				return err
			}
			ok("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			sess := store.Current()
			user := sess.User
			if remote {
				u, err := fetchMe(cmd.Context())
				if err != nil {
					return err
				}
				user = *u
			}

			header("Account: %s", displayName(user))
			printField("email", user.Email)
			role := color.GreenString("member")
			if user.IsAdmin() {
				role = color.MagentaString("admin")
			}
			printField("role", role)
			if user.Status != "" {
				printField("status", user.Status)
			}
			printField("gateway", client.BaseURL())
			if !sess.ExpiresAt.IsZero() {
				printField("expires", sess.ExpiresAt.Local().Format("Jan 2, 2006 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the gateway instead of reading the stored session")
	return cmd
}

func fetchMe(ctx context.Context) (*library.User, error) {
	u, err := client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	return u, nil
}

func displayName(u library.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "unknown user"
}
