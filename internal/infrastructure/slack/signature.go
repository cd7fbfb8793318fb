package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const signatureVersion = "v0"

// SignatureVerifier checks the platform's request signatures:
// HMAC-SHA256 over "v0:<timestamp>:<body>" with the app's signing
// secret. Requests older than the tolerance are rejected to blunt
// replay attacks.
type SignatureVerifier struct {
	secret    string
	tolerance time.Duration

	// Injectable for tests.
	now func() time.Time
}

func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{
		secret:    secret,
		tolerance: 5 * time.Minute,
		now:       time.Now,
	}
}

// Verify reports whether signature matches body at timestamp.
func (v *SignatureVerifier) Verify(timestamp, signature string, body []byte) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	age := v.now().Sub(time.Unix(ts, 0))
	if age > v.tolerance || age < -v.tolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	fmt.Fprintf(mac, "%s:%s:%s", signatureVersion, timestamp, body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
