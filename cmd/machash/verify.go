package main

import (
	"errors"

	"github.com/soypat/machash/hashcheck"
	"github.com/spf13/cobra"
)

// errVerifyFailed is returned when any vector does not match. It maps to exit code 1.
var errVerifyFailed = errors.New("hash vector verification failed")

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the hash calculation against known test vectors",
		Long: "Computes the hash filter index of every known test vector and prints the result\n" +
			"with the matching HTH/HTL register words. Exits with status 1 if any vector mismatches.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := hashcheck.Verify(a.vectors())
			if _, err := rep.WriteTo(cmd.OutOrStdout()); err != nil {
				return err
			}
			for _, r := range rep.Mismatches() {
				a.log.Error().Hex("data", r.Data).
					Stringer("computed", r.Computed).
					Stringer("expected", r.Expected).
					Str("source", r.Source).
					Msg("vector mismatch")
			}
			if !rep.OK {
				return errVerifyFailed
			}
			a.log.Debug().Int("vectors", len(rep.Results)).Msg("all vectors matched")
			return nil
		},
	}
}
