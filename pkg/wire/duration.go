package wire

import (
	"fmt"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// wireDuration is the CBOR wire form of a duration value.
// Zero fields are omitted, so common values stay very small.
type wireDuration struct {
	Negative bool  `cbor:"1,keyasint,omitempty"`
	Years    int64 `cbor:"2,keyasint,omitempty"`
	Months   int64 `cbor:"3,keyasint,omitempty"`
	Weeks    int64 `cbor:"4,keyasint,omitempty"`
	Days     int64 `cbor:"5,keyasint,omitempty"`
	Hours    int64 `cbor:"6,keyasint,omitempty"`
	Minutes  int64 `cbor:"7,keyasint,omitempty"`
	Seconds  int64 `cbor:"8,keyasint,omitempty"`
	Nanos    int32 `cbor:"9,keyasint,omitempty"`
}

// EncodeDuration encodes a duration value to CBOR bytes.
// Equal values produce identical bytes (canonical key order, zero
// fields omitted), so encoded durations are safe to compare or hash.
func EncodeDuration(d duration.Duration) ([]byte, error) {
	p := d.Parts()
	return Marshal(wireDuration{
		Negative: p.Negative,
		Years:    p.Years,
		Months:   p.Months,
		Weeks:    p.Weeks,
		Days:     p.Days,
		Hours:    p.Hours,
		Minutes:  p.Minutes,
		Seconds:  p.Seconds,
		Nanos:    p.Nanos,
	})
}

// DecodeDuration decodes CBOR bytes into a duration value.
// Field magnitudes are validated; payloads with negative magnitudes
// or out-of-range values are rejected.
func DecodeDuration(data []byte) (duration.Duration, error) {
	var w wireDuration
	if err := Unmarshal(data, &w); err != nil {
		return duration.Zero, fmt.Errorf("failed to decode duration: %w", err)
	}
	d, err := duration.FromParts(duration.Parts{
		Negative: w.Negative,
		Years:    w.Years,
		Months:   w.Months,
		Weeks:    w.Weeks,
		Days:     w.Days,
		Hours:    w.Hours,
		Minutes:  w.Minutes,
		Seconds:  w.Seconds,
		Nanos:    w.Nanos,
	})
	if err != nil {
		return duration.Zero, fmt.Errorf("invalid duration payload: %w", err)
	}
	return d, nil
}
