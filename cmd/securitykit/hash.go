package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/hasbyte1/securitykit/config"
	"github.com/hasbyte1/securitykit/password"
	"github.com/hasbyte1/securitykit/security"
)

var hashSkipValidation bool

var hashCmd = &cobra.Command{
	Use:   "hash [password]",
	Short: "Hash a password with the configured algorithm",
	Long: `Hash a password using the algorithm and policy selected by the
environment (HASH_VARIANT plus the variant's parameter keys).  The
password is validated against the PASSWORD_* complexity policy first
unless --skip-validation is set.

When no argument is given the password is read from stdin; on a
terminal the prompt does not echo.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().BoolVar(&hashSkipValidation, "skip-validation", false,
		"hash without checking complexity rules")
}

func runHash(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	plaintext, err := readPassword(args, "Password: ")
	if err != nil {
		return err
	}

	svc, err := newService(log)
	if err != nil {
		return err
	}

	var hash string
	if hashSkipValidation {
		hash, err = svc.HashUnchecked(plaintext)
	} else {
		hash, err = svc.Hash(plaintext)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// newService wires the environment-configured validator and hasher.
func newService(log *zap.Logger) (*security.PasswordSecurity, error) {
	pol, err := password.FromSource(config.Environ(), log)
	if err != nil {
		return nil, err
	}
	hasher, err := newFactory(log).Hasher()
	if err != nil {
		return nil, err
	}
	return security.New(password.NewValidator(pol), hasher, log), nil
}

// readPassword takes the password from args when present, otherwise from
// stdin (without echo on a terminal).
func readPassword(args []string, prompt string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
