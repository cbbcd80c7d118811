package password

import (
	"encoding/base64"
	"encoding/binary"
)

// PrfID identifies the pseudorandom function used inside the key
// derivation step. The numeric codes are part of the wire format and must
// not be reordered.
type PrfID uint32

const (
	// PrfHMACSHA1 is wire code 0.
	PrfHMACSHA1 PrfID = iota
	// PrfHMACSHA256 is wire code 1 and the default for new envelopes.
	PrfHMACSHA256
	// PrfHMACSHA512 is wire code 2.
	PrfHMACSHA512
)

const (
	formatMarkerV1 = 0x01

	// headerSize covers the format marker plus three uint32 fields.
	headerSize = 13

	minSaltLength = 16
	minKeyLength  = 16
)

// Envelope is the decoded representation of a hashed password: the PRF and
// cost parameter used, the per-hash salt, and the derived key. An Envelope
// is self-describing — verification needs no external context.
type Envelope struct {
	Prf        PrfID
	Iterations uint32
	Salt       []byte
	Key        []byte
}

// DecodeError reports a malformed credential envelope. Callers treat it as
// a verification failure toward end users; operators should log it since
// it indicates data corruption or a format-version mismatch.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "password: malformed credential envelope: " + e.Reason
}

// Encode serializes the envelope into its binary form.
func (e *Envelope) Encode() []byte {
	out := make([]byte, headerSize+len(e.Salt)+len(e.Key))
	out[0] = formatMarkerV1
	binary.BigEndian.PutUint32(out[1:5], uint32(e.Prf))
	binary.BigEndian.PutUint32(out[5:9], e.Iterations)
	binary.BigEndian.PutUint32(out[9:13], uint32(len(e.Salt)))
	copy(out[headerSize:], e.Salt)
	copy(out[headerSize+len(e.Salt):], e.Key)
	return out
}

// Decode parses a binary envelope, rejecting any input whose declared
// lengths are inconsistent with the buffer. It never panics on malformed
// data.
func Decode(data []byte) (*Envelope, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Reason: "empty input"}
	}
	if data[0] != formatMarkerV1 {
		return nil, &DecodeError{Reason: "unknown format marker"}
	}
	if len(data) < headerSize {
		return nil, &DecodeError{Reason: "truncated header"}
	}

	saltLen := binary.BigEndian.Uint32(data[9:13])
	if saltLen < minSaltLength {
		return nil, &DecodeError{Reason: "salt shorter than 128 bits"}
	}
	if uint64(saltLen) > uint64(len(data)-headerSize) {
		return nil, &DecodeError{Reason: "declared salt length exceeds payload"}
	}

	keyLen := len(data) - headerSize - int(saltLen)
	if keyLen < minKeyLength {
		return nil, &DecodeError{Reason: "derived key shorter than 128 bits"}
	}

	env := &Envelope{
		Prf:        PrfID(binary.BigEndian.Uint32(data[1:5])),
		Iterations: binary.BigEndian.Uint32(data[5:9]),
		Salt:       make([]byte, saltLen),
		Key:        make([]byte, keyLen),
	}
	copy(env.Salt, data[headerSize:headerSize+int(saltLen)])
	copy(env.Key, data[headerSize+int(saltLen):])
	return env, nil
}

// EncodeText returns the persisted text form of the envelope: standard
// base64 over the binary layout.
func EncodeText(e *Envelope) string {
	return base64.StdEncoding.EncodeToString(e.Encode())
}

// DecodeText parses the persisted text form produced by EncodeText.
func DecodeText(encoded string) (*Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodeError{Reason: "invalid base64"}
	}
	return Decode(raw)
}
