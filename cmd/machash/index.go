package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/soypat/machash"
	"github.com/soypat/machash/ethernet"
	"github.com/spf13/cobra"
)

func (a *app) indexCmd() *cobra.Command {
	var frames []string
	cmd := &cobra.Command{
		Use:   "index [<mac>...] [--frame <hex>...]",
		Short: "Compute the hash filter index and registers of hardware addresses",
		Long: "Prints the hash filter index of every address followed by the HTH/HTL register\n" +
			"values that make the filter accept all of them. Frames given with --frame are\n" +
			"checked against that filter by their destination address.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(frames) == 0 {
				return errors.New("requires at least one address or --frame")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var ht ethernet.HashTable
			var buf []byte
			for _, arg := range args {
				hw, err := net.ParseMAC(arg)
				if err != nil {
					return fmt.Errorf("%w: %w", machash.ErrInvalidInput, err)
				}
				hi, err := ethernet.AddrHashIndex(hw)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				ht.Set(hi)
				addr := [6]byte(hw)
				a.log.Debug().Str("addr", hw.String()).Bool("multicast", ethernet.IsMulticastAddr(addr)).
					Stringer("index", hi).Msg("hashed")
				buf = ethernet.AppendAddr(buf, addr)
				buf = fmt.Appendf(buf, " -> %s. %s\n", hi, ethernet.HashTableOf(hi))
			}
			buf = fmt.Appendf(buf, "Filter: %s\n", ht)
			for i, s := range frames {
				raw, err := hex.DecodeString(strings.NewReplacer(":", "", " ", "").Replace(s))
				if err != nil {
					return fmt.Errorf("frame %d: %w: %w", i, machash.ErrInvalidInput, err)
				}
				efrm, err := ethernet.NewFrame(raw)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				verdict := "drop"
				if efrm.PassesHashFilter(ht) {
					verdict = "pass"
				}
				buf = fmt.Appendf(buf, "frame %d: ", i)
				buf = ethernet.AppendAddr(buf, efrm.DestinationHardwareAddr())
				buf = fmt.Appendf(buf, " -> %s, hash filter: %s\n", efrm.DestinationHashIndex(), verdict)
			}
			_, err := cmd.OutOrStdout().Write(buf)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&frames, "frame", nil, "Frame in hex, starting at the destination address, to check against the filter")
	return cmd
}
