// Package wire defines the CBOR wire format for duration values.
//
// Values are encoded as CBOR (RFC 8949) maps with integer keys for
// compactness. The encoder is deterministic: canonical key ordering,
// no indefinite lengths, zero fields omitted. Equal duration values
// therefore produce byte-identical payloads.
//
// The decoder is lenient for forward compatibility: unknown keys are
// ignored, so payloads written by a newer version still decode.
// Decoded field magnitudes are validated before a Duration is built.
package wire
