package main

import (
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/soypat/machash"
	"github.com/soypat/machash/collision"
	"github.com/soypat/machash/ethernet"
	"github.com/spf13/cobra"
)

// defaultPrefix is "\xe8RCA", the address prefix of the xpcc-over-ethernet frames.
const defaultPrefix = "e8524341"

func (a *app) collisionsCmd() *cobra.Command {
	var (
		prefix  string
		workers int
		buckets []int
	)
	cmd := &cobra.Command{
		Use:   "collisions",
		Short: "Count how discriminator byte pairs spread over the hash filter buckets",
		Long: "Enumerates all 65536 values of the two bytes following a 4 byte address prefix\n" +
			"and prints, for every hash filter index, the number of pairs that map to it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pfx, err := parsePrefix(prefix)
			if err != nil {
				return err
			}
			indices := make([]ethernet.HashIndex, len(buckets))
			for i, b := range buckets {
				if b < 0 || b >= ethernet.HashTableSize {
					return fmt.Errorf("bucket %d out of range 0..63: %w", b, machash.ErrInvalidInput)
				}
				indices[i] = ethernet.HashIndex(b)
			}
			if workers <= 0 {
				workers = runtime.GOMAXPROCS(0)
			}
			start := time.Now()
			m, err := collision.AnalyzeParallel(cmd.Context(), pfx, workers)
			if err != nil {
				return err
			}
			a.log.Info().Hex("prefix", pfx[:]).Int("workers", workers).
				Int("pairs", m.Total()).Dur("elapsed", time.Since(start)).Msg("enumeration done")

			out := cmd.OutOrStdout()
			if _, err := m.WriteCounts(out); err != nil {
				return err
			}
			if len(indices) == 0 {
				return nil
			}
			var buf []byte
			for _, pr := range m.Candidates(indices...) {
				buf = fmt.Appendf(buf, "%02x %02x -> %s\n", pr.D, pr.P, m.Lookup(pr))
			}
			_, err = out.Write(buf)
			return err
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", defaultPrefix, "4 byte address prefix in hex")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of enumeration workers (0 means GOMAXPROCS)")
	cmd.Flags().IntSliceVar(&buckets, "bucket", nil, "List the discriminator pairs that map to these indices")
	return cmd
}

// parsePrefix decodes a 4 byte hex prefix. Octets may be separated by ':' or '-'.
func parsePrefix(s string) (pfx [4]byte, err error) {
	s = strings.NewReplacer(":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return pfx, fmt.Errorf("prefix %q: %w: %w", s, machash.ErrInvalidInput, err)
	} else if len(b) != len(pfx) {
		return pfx, fmt.Errorf("prefix %q is %d bytes, want 4: %w", s, len(b), machash.ErrInvalidInput)
	}
	copy(pfx[:], b)
	return pfx, nil
}
