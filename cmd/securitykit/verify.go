package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyRehash bool

var verifyCmd = &cobra.Command{
	Use:   "verify <stored-hash> [password]",
	Short: "Verify a password against a stored hash",
	Long: `Verify a password against a stored hash using the algorithm the
hash itself selects.  Exits 0 on a match and non-zero otherwise.

With --rehash, a matching password whose hash is stale under the current
policy prints a replacement hash on stdout.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyRehash, "rehash", false,
		"print an upgraded hash when the stored one is stale")
}

func runVerify(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	storedHash := args[0]
	plaintext, err := readPassword(args[1:], "Password: ")
	if err != nil {
		return err
	}

	svc, err := newService(log)
	if err != nil {
		return err
	}

	if verifyRehash {
		res, err := svc.VerifyAndRehash(storedHash, plaintext, nil)
		if err != nil {
			return err
		}
		if !res.Valid {
			return errors.New("password does not match")
		}
		if res.Rehashed {
			fmt.Fprintln(cmd.OutOrStdout(), res.NewHash)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "match (hash up to date)")
		}
		return nil
	}

	if !svc.Verify(plaintext, storedHash) {
		return errors.New("password does not match")
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "match")
	return nil
}
