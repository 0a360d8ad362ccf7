package classify_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/mvr/classify"
	"github.com/krisalay/mvr/types"
)

func response(status int, body string, header http.Header) *types.Response {
	if header == nil {
		header = http.Header{}
	}
	return &types.Response{StatusCode: status, Header: header, Body: []byte(body)}
}

func TestClassifyTable(t *testing.T) {
	c := classify.Classifier{Timeout: 30 * time.Second}

	tests := []struct {
		name      string
		resp      *types.Response
		err       error
		kind      types.Kind
		retryable bool
	}{
		{"ok", response(200, "0x1", nil), nil, types.KindUnknown, false},
		{"not found", response(404, "", nil), nil, types.KindNotFound, false},
		{"rate limited", response(429, "", nil), nil, types.KindRateLimited, true},
		{"server error", response(503, "down", nil), nil, types.KindServerError, true},
		{"bad request", response(400, "nope", nil), nil, types.KindServerError, false},
		{"transport", nil, errors.New("connection refused"), types.KindNetwork, true},
		{"deadline", nil, fmt.Errorf("get: %w", context.DeadlineExceeded), types.KindTimeout, true},
		{"canceled", nil, context.Canceled, types.KindNetwork, true},
		{"no response", nil, nil, types.KindNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Classify("@suifrens/core", tt.resp, tt.err)
			if tt.kind == types.KindUnknown {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, types.KindOf(err))
			assert.Equal(t, tt.retryable, types.IsRetryable(err))
		})
	}
}

func TestNotFoundCarriesName(t *testing.T) {
	err := classify.Classifier{}.Classify("@suifrens/core", response(404, "", nil), nil)

	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "@suifrens/core", typed.Name)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTimeoutCarriesConfiguredTimeout(t *testing.T) {
	err := classify.Classifier{Timeout: 5 * time.Second}.Classify("@a/b", nil, context.DeadlineExceeded)

	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, int64(5), typed.TimeoutSecs())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTypedErrorPassesThrough(t *testing.T) {
	orig := types.ConcurrencyExceeded(4, context.Canceled)
	err := classify.Classifier{}.Classify("@a/b", nil, orig)
	assert.Same(t, orig, err)
}

func TestServerErrorMessage(t *testing.T) {
	c := classify.Classifier{}

	var typed *types.Error
	require.ErrorAs(t, c.Classify("@a/b", response(500, "  boom \n", nil), nil), &typed)
	assert.Equal(t, 500, typed.StatusCode)
	assert.Equal(t, "boom", typed.Message)

	require.ErrorAs(t, c.Classify("@a/b", response(502, "", nil), nil), &typed)
	assert.Equal(t, "Bad Gateway", typed.Message)
}

//
// ================= RETRY-AFTER =================
//

func TestRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := classify.Classifier{Now: func() time.Time { return now }}

	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"seconds", "30", 30 * time.Second},
		{"zero", "0", 0},
		{"missing", "", classify.DefaultRetryAfter},
		{"garbage", "soon", classify.DefaultRetryAfter},
		{"negative", "-5", classify.DefaultRetryAfter},
		{"http date", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{"date in the past", now.Add(-time.Hour).Format(http.TimeFormat), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set("Retry-After", tt.header)
			}
			err := c.Classify("@a/b", response(429, "", h), nil)

			delay, ok := types.RetryDelay(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, delay)
		})
	}
}

//
// ================= BODY DECODING =================
//

func TestDecodePackage(t *testing.T) {
	addr := "0x" + "ab12" + "0000000000000000000000000000000000000000000000000000000000"

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"bare address", addr, addr, false},
		{"bare address with newline", addr + "\n", addr, false},
		{"address field", `{"address":"0xABC"}`, "0xABC", false},
		{"package_id field", `{"package_id":"0xDEF"}`, "0xDEF", false},
		{"address wins", `{"address":"0x1","package_id":"0x2"}`, "0x1", false},
		{"short hex is not bare", "0x12", "", true},
		{"missing field", `{"name":"x"}`, "", true},
		{"not json", "<html>", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classify.DecodePackage([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrSerialization)
				assert.False(t, types.IsRetryable(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeType(t *testing.T) {
	got, err := classify.DecodeType([]byte(`{"type_signature":"0x1::suifrens::SuiFren"}`))
	require.NoError(t, err)
	assert.Equal(t, "0x1::suifrens::SuiFren", got)

	got, err = classify.DecodeType([]byte(`{"signature":"0x2::m::T"}`))
	require.NoError(t, err)
	assert.Equal(t, "0x2::m::T", got)

	_, err = classify.DecodeType([]byte(`{}`))
	assert.ErrorIs(t, err, types.ErrSerialization)

	_, err = classify.DecodeType([]byte(`0x2::m::T`))
	assert.ErrorIs(t, err, types.ErrSerialization)
}
