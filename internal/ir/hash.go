package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/timeset/internal/instant"
)

// Domain prefixes keep identities of different value classes apart.
const (
	DomainSet   = "timeset/set/v1"
	DomainTrace = "timeset/trace/v1"
)

// hashWithDomain computes SHA256(domain || 0x00 || data) as hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SetID is the content identity of a set. Equal sets have equal IDs.
func SetID(s instant.ValueSet) (string, error) {
	canonical, err := MarshalCanonical(EncodeSet(s))
	if err != nil {
		return "", fmt.Errorf("SetID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSet, canonical), nil
}

// TraceDigest is the content identity of an already canonical trace
// document.
func TraceDigest(canonical []byte) string {
	return hashWithDomain(DomainTrace, canonical)
}

// MustSetID is like SetID but panics on error.
func MustSetID(s instant.ValueSet) string {
	id, err := SetID(s)
	if err != nil {
		panic(err)
	}
	return id
}
