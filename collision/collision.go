// Package collision enumerates how a two byte discriminator field appended to a
// fixed 4 byte address prefix spreads over the 64 MAC hash filter buckets.
// Operators use the result to pick discriminator values whose frames land in
// predictable buckets of the hardware filter.
package collision

import (
	"context"
	"fmt"
	"io"

	"github.com/soypat/machash/ethernet"
	"golang.org/x/sync/errgroup"
)

// Combinations is the number of (d, p) pairs enumerated for a prefix.
const Combinations = 256 * 256

// Pair is a discriminator byte pair: D is the fifth address octet, P the sixth.
type Pair struct {
	D, P byte
}

// Addr returns the hardware address prefix ++ [D, P].
func (pr Pair) Addr(prefix [4]byte) [6]byte {
	return [6]byte{prefix[0], prefix[1], prefix[2], prefix[3], pr.D, pr.P}
}

// Map holds for every hash filter index the pairs that map to it,
// in enumeration order (D ascending, then P ascending).
type Map struct {
	Prefix  [4]byte
	buckets [ethernet.HashTableSize][]Pair
}

// Analyze enumerates all 65536 pairs for prefix and returns the resulting Map.
func Analyze(prefix [4]byte) *Map {
	m := &Map{Prefix: prefix}
	m.enumerate(0, 256)
	return m
}

// AnalyzeParallel is like [Analyze] but splits the enumeration across workers.
// The result is identical to that of Analyze. If workers <= 0 a single worker is used.
// An error is returned only if ctx is done before the enumeration completes.
func AnalyzeParallel(ctx context.Context, prefix [4]byte, workers int) (*Map, error) {
	if workers <= 0 {
		workers = 1
	} else if workers > 256 {
		workers = 256
	}
	parts := make([]Map, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range parts {
		dStart, dEnd := 256*w/workers, 256*(w+1)/workers
		part := &parts[w]
		part.Prefix = prefix
		g.Go(func() error {
			for d := dStart; d < dEnd; d++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				part.enumerate(d, d+1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m := &Map{Prefix: prefix}
	for i := range m.buckets {
		n := 0
		for w := range parts {
			n += len(parts[w].buckets[i])
		}
		m.buckets[i] = make([]Pair, 0, n)
		// Parts cover ascending D ranges so concatenation keeps enumeration order.
		for w := range parts {
			m.buckets[i] = append(m.buckets[i], parts[w].buckets[i]...)
		}
	}
	return m, nil
}

// enumerate adds all pairs with dStart <= D < dEnd to m.
func (m *Map) enumerate(dStart, dEnd int) {
	var addr [6]byte
	copy(addr[:4], m.Prefix[:])
	for d := dStart; d < dEnd; d++ {
		addr[4] = byte(d)
		for p := 0; p < 256; p++ {
			addr[5] = byte(p)
			hi := ethernet.HashIndexOf(addr[:])
			m.buckets[hi] = append(m.buckets[hi], Pair{D: byte(d), P: byte(p)})
		}
	}
}

// Bucket returns the pairs mapping to index hi. The returned slice must not be modified.
func (m *Map) Bucket(hi ethernet.HashIndex) []Pair {
	return m.buckets[hi&(ethernet.HashTableSize-1)]
}

// Counts returns the number of pairs in each bucket.
func (m *Map) Counts() (counts [ethernet.HashTableSize]int) {
	for i, b := range m.buckets {
		counts[i] = len(b)
	}
	return counts
}

// Total returns the number of pairs in the map. A complete map holds [Combinations] pairs.
func (m *Map) Total() (n int) {
	for _, b := range m.buckets {
		n += len(b)
	}
	return n
}

// Lookup returns the bucket pr was enumerated into.
func (m *Map) Lookup(pr Pair) ethernet.HashIndex {
	addr := pr.Addr(m.Prefix)
	return ethernet.HashIndexOf(addr[:])
}

// Candidates returns the pairs that map to any of indices, in enumeration order.
func (m *Map) Candidates(indices ...ethernet.HashIndex) []Pair {
	want := ethernet.HashTableOf(indices...)
	var lists [][]Pair
	n := 0
	for i := range m.buckets {
		if want.Has(ethernet.HashIndex(i)) && len(m.buckets[i]) > 0 {
			lists = append(lists, m.buckets[i])
			n += len(m.buckets[i])
		}
	}
	if n == 0 {
		return nil
	}
	// Every bucket is sorted by enumeration order; merge them.
	pairs := make([]Pair, 0, n)
	for len(lists) > 0 {
		next := 0
		for k := 1; k < len(lists); k++ {
			if lists[k][0].order() < lists[next][0].order() {
				next = k
			}
		}
		pairs = append(pairs, lists[next][0])
		lists[next] = lists[next][1:]
		if len(lists[next]) == 0 {
			lists = append(lists[:next], lists[next+1:]...)
		}
	}
	return pairs
}

// order is the position of pr in the enumeration.
func (pr Pair) order() int { return int(pr.D)<<8 | int(pr.P) }

// WriteCounts writes a line "index: count" for every bucket in ascending index order.
func (m *Map) WriteCounts(w io.Writer) (int64, error) {
	var buf []byte
	for i, b := range m.buckets {
		buf = fmt.Appendf(buf, "%2d: %d\n", i, len(b))
	}
	n, err := w.Write(buf)
	return int64(n), err
}
