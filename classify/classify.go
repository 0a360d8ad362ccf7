// Package classify turns a Fetcher outcome into the resolver's closed error
// taxonomy, and decodes successful response bodies.
//
// Classification happens exactly once per remote call. The result is handed
// to the caller as is; nothing here retries.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/krisalay/mvr/types"
)

// DefaultRetryAfter applies when a 429 carries no usable Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// Classifier maps (response, transport error) pairs to *types.Error.
type Classifier struct {
	// Timeout is the configured per-request timeout reported by Timeout errors.
	Timeout time.Duration

	// Now resolves HTTP-date Retry-After values. Defaults to time.Now.
	Now func() time.Time
}

/*
Classify returns nil for a 2xx response and a *types.Error for everything else.

	transport error, deadline exceeded   → Timeout(c.Timeout)
	transport error, anything else       → Network
	404                                  → NotFound(name)
	429                                  → RateLimited(Retry-After, default 60s)
	any other non-2xx                    → ServerError(status, body)

An error that is already a *types.Error is passed through unchanged.
*/
func (c Classifier) Classify(name string, resp *types.Response, err error) error {
	if err != nil {
		return c.transport(err)
	}
	if resp == nil {
		return types.Network(errors.New("fetcher returned no response"))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return types.NotFound(name)
	case resp.StatusCode == http.StatusTooManyRequests:
		return types.RateLimited(c.retryAfter(resp.Header))
	default:
		return types.ServerError(resp.StatusCode, message(resp))
	}
}

func (c Classifier) transport(err error) error {
	var typed *types.Error
	if errors.As(err, &typed) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.Timeout(c.Timeout, err)
	}
	return types.Network(err)
}

// retryAfter accepts both forms of the header: delay-seconds and HTTP-date.
func (c Classifier) retryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return DefaultRetryAfter
	}
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		if secs < 0 {
			return DefaultRetryAfter
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		d := at.Sub(now()).Truncate(time.Second)
		if d < 0 {
			return 0
		}
		return d
	}
	return DefaultRetryAfter
}

func message(resp *types.Response) string {
	if msg := strings.TrimSpace(string(resp.Body)); msg != "" {
		return msg
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "Unknown error"
}

//
// ================= BODY DECODING =================
//

type packageBody struct {
	Address   string `json:"address"`
	PackageID string `json:"package_id"`
}

type typeBody struct {
	TypeSignature string `json:"type_signature"`
	Signature     string `json:"signature"`
}

/*
DecodePackage extracts a package address from a successful response body.

Accepted shapes:
  - a bare hex address: 0x followed by at least 40 hex digits
  - a JSON object with "address" or, failing that, "package_id"
*/
func DecodePackage(body []byte) (string, error) {
	text := strings.TrimSpace(string(body))
	if isBareAddress(text) {
		return text, nil
	}

	var pb packageBody
	if err := json.Unmarshal([]byte(text), &pb); err != nil {
		return "", types.Serialization(err)
	}
	switch {
	case pb.Address != "":
		return pb.Address, nil
	case pb.PackageID != "":
		return pb.PackageID, nil
	}
	return "", types.Serialization(errors.New("address not found in response"))
}

// DecodeType extracts a type signature from a JSON body carrying
// "type_signature" or "signature".
func DecodeType(body []byte) (string, error) {
	var tb typeBody
	if err := json.Unmarshal(body, &tb); err != nil {
		return "", types.Serialization(err)
	}
	switch {
	case tb.TypeSignature != "":
		return tb.TypeSignature, nil
	case tb.Signature != "":
		return tb.Signature, nil
	}
	return "", types.Serialization(errors.New("type signature not found in response"))
}

func isBareAddress(s string) bool {
	hex, ok := strings.CutPrefix(s, "0x")
	if !ok || len(hex) < 40 {
		return false
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
