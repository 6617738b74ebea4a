package machash

//go:generate stringer -type=errGeneric -linecomment -output stringers.go .

type errGeneric uint8

// Generic errors common to hash filter calculations.
const (
	_               errGeneric = iota // non-initialized err
	ErrInvalidInput                   // invalid input
	ErrShortFrame                     // frame too short
)

func (err errGeneric) Error() string {
	return err.String()
}
