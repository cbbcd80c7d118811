package password

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"
)

func testEnvelope() *Envelope {
	return &Envelope{
		Prf:        PrfHMACSHA256,
		Iterations: 100_000,
		Salt:       bytes.Repeat([]byte{0xAA}, 16),
		Key:        bytes.Repeat([]byte{0xBB}, 32),
	}
}

func TestEncodeLayout(t *testing.T) {
	env := testEnvelope()
	raw := env.Encode()

	if len(raw) != 13+16+32 {
		t.Fatalf("unexpected envelope size %d", len(raw))
	}
	if raw[0] != 0x01 {
		t.Fatalf("format marker = %#x, want 0x01", raw[0])
	}
	if prf := binary.BigEndian.Uint32(raw[1:5]); prf != uint32(PrfHMACSHA256) {
		t.Fatalf("prf field = %d", prf)
	}
	if iter := binary.BigEndian.Uint32(raw[5:9]); iter != 100_000 {
		t.Fatalf("iteration field = %d", iter)
	}
	if saltLen := binary.BigEndian.Uint32(raw[9:13]); saltLen != 16 {
		t.Fatalf("salt length field = %d", saltLen)
	}
	if !bytes.Equal(raw[13:29], env.Salt) {
		t.Fatal("salt bytes not at expected offset")
	}
	if !bytes.Equal(raw[29:], env.Key) {
		t.Fatal("key bytes not at expected offset")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	env := testEnvelope()

	decoded, err := Decode(env.Encode())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Prf != env.Prf || decoded.Iterations != env.Iterations {
		t.Fatal("decoded parameters differ")
	}
	if !bytes.Equal(decoded.Salt, env.Salt) || !bytes.Equal(decoded.Key, env.Key) {
		t.Fatal("decoded salt or key differs")
	}
}

func TestDecodeTextRoundTrip(t *testing.T) {
	env := testEnvelope()

	text := EncodeText(env)
	if _, err := base64.StdEncoding.DecodeString(text); err != nil {
		t.Fatalf("text form is not standard base64: %v", err)
	}

	decoded, err := DecodeText(text)
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if !bytes.Equal(decoded.Key, env.Key) {
		t.Fatal("round-tripped key differs")
	}
}

func TestDecodeRejectsMalformedEnvelopes(t *testing.T) {
	valid := testEnvelope().Encode()

	shortSalt := testEnvelope()
	shortSalt.Salt = shortSalt.Salt[:8]

	overrun := append([]byte(nil), valid...)
	binary.BigEndian.PutUint32(overrun[9:13], 1<<30)

	shortKey := testEnvelope()
	shortKey.Key = shortKey.Key[:8]

	badMarker := append([]byte(nil), valid...)
	badMarker[0] = 0x02

	cases := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"truncated header", valid[:7]},
		{"unknown marker", badMarker},
		{"salt below minimum", shortSalt.Encode()},
		{"declared salt exceeds payload", overrun},
		{"key below minimum", shortKey.Encode()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			if err == nil {
				t.Fatal("expected decode error")
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
		})
	}
}

func TestDecodeTextRejectsInvalidBase64(t *testing.T) {
	if _, err := DecodeText("!!not base64!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}
