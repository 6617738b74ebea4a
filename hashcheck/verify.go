// Package hashcheck verifies the hash filter index calculation against
// vectors with known results.
package hashcheck

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/soypat/machash/ethernet"
)

// Result is the outcome of checking a single [Vector].
type Result struct {
	Vector
	Computed ethernet.HashIndex
	Match    bool
	// HTH and HTL are the hash table register words with the computed index set.
	HTH, HTL uint32
}

// Report holds the results of [Verify] in the order of the input vectors.
type Report struct {
	Results []Result
	// OK is true only if every vector matched.
	OK bool
}

// Verify computes the hash filter index of every vector and compares it to the expected value.
// An empty vector list yields an OK report.
func Verify(vectors []Vector) Report {
	rep := Report{
		Results: make([]Result, len(vectors)),
		OK:      true,
	}
	for i, v := range vectors {
		hi := ethernet.HashIndexOf(v.Data)
		hth, htl := hi.Registers()
		rep.Results[i] = Result{
			Vector:   v,
			Computed: hi,
			Match:    hi == v.Expected,
			HTH:      hth,
			HTL:      htl,
		}
		rep.OK = rep.OK && rep.Results[i].Match
	}
	return rep
}

// Mismatches returns the results that did not match their expected index.
func (rep Report) Mismatches() []Result {
	var bad []Result
	for _, r := range rep.Results {
		if !r.Match {
			bad = append(bad, r)
		}
	}
	return bad
}

// AppendText appends the single line report of r to dst, without newline.
func (r Result) AppendText(dst []byte) []byte {
	dst = append(dst, "Checking "...)
	dst = append(dst, hex.EncodeToString(r.Data)...)
	dst = fmt.Appendf(dst, ": Calced: %s, Expected %s, Result: ", r.Computed, r.Expected)
	dst = strconv.AppendBool(dst, r.Match)
	return fmt.Appendf(dst, ". HTH = 0x%08x, HTL = 0x%08x", r.HTH, r.HTL)
}

// WriteTo writes one line per result followed by the overall result line.
func (rep Report) WriteTo(w io.Writer) (int64, error) {
	var buf []byte
	for _, r := range rep.Results {
		buf = r.AppendText(buf)
		buf = append(buf, '\n')
	}
	buf = append(buf, "Overall Test Result: "...)
	buf = strconv.AppendBool(buf, rep.OK)
	buf = append(buf, '\n')
	n, err := w.Write(buf)
	return int64(n), err
}
