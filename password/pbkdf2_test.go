package password

import (
	"crypto/subtle"
	"testing"
	"time"
)

func newTestHasher(t *testing.T, iterations uint32) *Hasher {
	t.Helper()

	hasher, err := NewHasher(Config{
		Prf:        PrfHMACSHA256,
		Iterations: iterations,
		SaltLength: DefaultSaltLength,
		KeyLength:  DefaultKeyLength,
	})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	return hasher
}

func TestNewHasherValidation(t *testing.T) {
	if _, err := NewHasher(Config{Iterations: 10}); err == nil {
		t.Fatal("expected error for iteration count below minimum")
	}
	if _, err := NewHasher(Config{SaltLength: 8}); err == nil {
		t.Fatal("expected error for short salt")
	}
	if _, err := NewHasher(Config{KeyLength: 8}); err == nil {
		t.Fatal("expected error for short key")
	}
	if _, err := NewHasher(Config{Prf: PrfID(99)}); err == nil {
		t.Fatal("expected error for unknown prf")
	}

	hasher, err := NewHasher(Config{})
	if err != nil {
		t.Fatalf("NewHasher with defaults failed: %v", err)
	}
	if hasher.Iterations() != DefaultIterations {
		t.Fatalf("default iterations = %d", hasher.Iterations())
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	hasher := newTestHasher(t, 1_000)

	encoded, err := hasher.Hash("Abcdef12")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	result, verr := hasher.Verify("Abcdef12", encoded)
	if verr != nil {
		t.Fatalf("unexpected diagnostic error: %v", verr)
	}
	if result != Success {
		t.Fatalf("Verify = %v, want Success", result)
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hasher := newTestHasher(t, 1_000)

	encoded, err := hasher.Hash("Abcdef12")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if result, _ := hasher.Verify("Abcdef13", encoded); result != Failed {
		t.Fatalf("Verify with wrong password = %v, want Failed", result)
	}
}

func TestHashIsNonDeterministic(t *testing.T) {
	hasher := newTestHasher(t, 1_000)

	first, err := hasher.Hash("Abcdef12")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := hasher.Hash("Abcdef12")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password share a salt")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	hasher := newTestHasher(t, 1_000)
	if _, err := hasher.Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifySignalsRehashOnLowerIterations(t *testing.T) {
	old := newTestHasher(t, 1_000)
	current := newTestHasher(t, 2_000)

	encoded, err := old.Hash("Abcdef12")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if result, _ := current.Verify("Abcdef12", encoded); result != SuccessRehashNeeded {
		t.Fatalf("Verify = %v, want SuccessRehashNeeded", result)
	}

	// Equal or higher stored cost must not signal an upgrade.
	if result, _ := old.Verify("Abcdef12", encoded); result != Success {
		t.Fatal("equal iteration count should verify as plain Success")
	}

	stronger, err := current.Hash("Abcdef12")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if result, _ := old.Verify("Abcdef12", stronger); result != Success {
		t.Fatal("higher stored iteration count should verify as plain Success")
	}
}

func TestVerifyFailsClosedOnMalformedInput(t *testing.T) {
	hasher := newTestHasher(t, 1_000)

	cases := []string{"", "not-base64!!!", "AAAA", EncodeText(testEnvelope())}
	for _, encoded := range cases {
		result, _ := hasher.Verify("Abcdef12", encoded)
		if result != Failed {
			t.Errorf("Verify(%q) = %v, want Failed", encoded, result)
		}
	}
}

func TestVerifyReportsDecodeDiagnostics(t *testing.T) {
	hasher := newTestHasher(t, 1_000)

	result, err := hasher.Verify("Abcdef12", "%%%")
	if result != Failed {
		t.Fatalf("Verify = %v, want Failed", result)
	}
	if err == nil {
		t.Fatal("expected diagnostic decode error for corrupt envelope")
	}
}

func TestVerifySupportsAllPrfCodes(t *testing.T) {
	for _, prf := range []PrfID{PrfHMACSHA1, PrfHMACSHA256, PrfHMACSHA512} {
		hasher, err := NewHasher(Config{Prf: prf, Iterations: 1_000})
		if err != nil {
			t.Fatalf("NewHasher(prf=%d) failed: %v", prf, err)
		}
		encoded, err := hasher.Hash("Abcdef12")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}
		if result, _ := hasher.Verify("Abcdef12", encoded); result != Success {
			t.Fatalf("Verify with prf %d = %v, want Success", prf, result)
		}
	}
}

// The comparator must not leak where two keys first differ. Equal-length
// comparisons that diverge at the first byte and at the last byte are
// timed in bulk; the means may differ only within a generous factor that
// a short-circuiting comparator would blow through by orders of magnitude.
func TestConstantTimeComparatorTiming(t *testing.T) {
	if testing.Short() {
		t.Skip("timing measurement skipped in short mode")
	}

	const size = 4096
	const rounds = 2000

	base := make([]byte, size)
	for i := range base {
		base[i] = byte(i)
	}

	diffFirst := append([]byte(nil), base...)
	diffFirst[0] ^= 0xFF
	diffLast := append([]byte(nil), base...)
	diffLast[size-1] ^= 0xFF

	measure := func(other []byte) time.Duration {
		start := time.Now()
		for i := 0; i < rounds; i++ {
			if subtle.ConstantTimeCompare(base, other) == 1 {
				t.Fatal("unequal inputs compared equal")
			}
		}
		return time.Since(start)
	}

	// Warm up caches before timing.
	measure(diffFirst)
	measure(diffLast)

	first := measure(diffFirst)
	last := measure(diffLast)

	ratio := float64(first) / float64(last)
	if ratio < 1 {
		ratio = 1 / ratio
	}
	if ratio > 5 {
		t.Fatalf("comparison time correlates with differing position: first=%v last=%v", first, last)
	}
}
