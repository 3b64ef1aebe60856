// Package tracking generates shipment tracking codes.
package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// Prefix identifies codes issued by this service.
const Prefix = "ZSP"

const suffixBytes = 6 // 12 hex characters

// New returns a tracking code of the form ZSP-YYYYMMDD-XXXXXXXXXXXX where the
// date is the given instant in UTC and the suffix is random hex.
func New(now time.Time) string {
	buf := make([]byte, suffixBytes)
	// rand.Read never fails on supported platforms (it panics instead).
	_, _ = rand.Read(buf)

	var b strings.Builder
	b.WriteString(Prefix)
	b.WriteByte('-')
	b.WriteString(now.UTC().Format("20060102"))
	b.WriteByte('-')
	b.WriteString(strings.ToUpper(hex.EncodeToString(buf)))
	return b.String()
}
