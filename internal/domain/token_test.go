package domain_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/fomo-ops/fomobot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		request domain.SwapRequest
	}{
		{
			name: "overnight window",
			request: domain.SwapRequest{
				Requestor: "U1",
				Window: domain.Window{
					StartDate: "2024-01-01", StartTime: "09:00",
					EndDate: "2024-01-02", EndTime: "09:00",
				},
			},
		},
		{
			name: "same day window",
			request: domain.SwapRequest{
				Requestor: "U02ABCDEF",
				Window: domain.Window{
					StartDate: "2024-06-15", StartTime: "17:30",
					EndDate: "2024-06-15", EndTime: "23:30",
				},
			},
		},
		{
			name: "values the bot treats as opaque",
			request: domain.SwapRequest{
				Requestor: "U3",
				Window: domain.Window{
					StartDate: "next tuesday", StartTime: "morning-ish",
					EndDate: "someday", EndTime: "영원히",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := domain.EncodeToken(tt.request)
			require.NoError(t, err)

			decoded, err := domain.DecodeToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.request, decoded)
		})
	}
}

func TestEncodeToken_AlphabetIsDelimiterSafe(t *testing.T) {
	request := domain.SwapRequest{
		Requestor: "U1",
		Window: domain.Window{
			StartDate: "2024-01-01", StartTime: "09:00",
			EndDate: "2024-01-02", EndTime: "09:00",
		},
	}

	token, err := domain.EncodeToken(request)
	require.NoError(t, err)

	assert.NotContains(t, token, "_")
	assert.NotContains(t, token, "\n")
}

func TestDecodeToken_AcceptsSpacedJSON(t *testing.T) {
	// Tokens minted by other writers may carry spaces after JSON
	// separators. Decoding must not depend on our own marshaling.
	spaced := `{"ru": "U1", "sd": "2024-01-01", "st": "09:00", "ed": "2024-01-02", "et": "09:00"}`
	token := base64.StdEncoding.EncodeToString([]byte(spaced))

	decoded, err := domain.DecodeToken(token)

	require.NoError(t, err)
	assert.Equal(t, "U1", decoded.Requestor)
	assert.Equal(t, "2024-01-01", decoded.Window.StartDate)
	assert.Equal(t, "09:00", decoded.Window.StartTime)
	assert.Equal(t, "2024-01-02", decoded.Window.EndDate)
	assert.Equal(t, "09:00", decoded.Window.EndTime)
}

func TestDecodeToken_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"not base64", "!!!not-base64!!!"},
		{"bad padding", "YWJj="},
		{"base64 of non JSON", base64.StdEncoding.EncodeToString([]byte("not json"))},
		{"base64 of JSON null", base64.StdEncoding.EncodeToString([]byte("null"))},
		{"base64 of JSON number", base64.StdEncoding.EncodeToString([]byte("42"))},
		{"base64 of JSON array", base64.StdEncoding.EncodeToString([]byte(`["ru"]`))},
		{"empty JSON object", base64.StdEncoding.EncodeToString([]byte(`{}`))},
		{"missing window fields", base64.StdEncoding.EncodeToString([]byte(`{"ru":"U1"}`))},
		{"empty required field", base64.StdEncoding.EncodeToString([]byte(`{"ru":"","sd":"a","st":"b","ed":"c","et":"d"}`))},
		{"wrong field types", base64.StdEncoding.EncodeToString([]byte(`{"ru":1,"sd":2,"st":3,"ed":4,"et":5}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.DecodeToken(tt.token)

			assert.ErrorIs(t, err, domain.ErrBadToken)
		})
	}
}

// Any byte soup must fail cleanly, never panic.
func TestDecodeToken_GarbageNeverPanics(t *testing.T) {
	inputs := []string{
		strings.Repeat("A", 10000),
		"\x00\x01\x02",
		"====",
		base64.StdEncoding.EncodeToString([]byte(strings.Repeat(`{"ru":`, 100))),
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() {
			_, _ = domain.DecodeToken(input)
		})
	}
}

func TestTokenLine(t *testing.T) {
	line := domain.TokenLine("abc123")

	assert.Equal(t, "RequestID:_abc123_", line)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantToken string
		wantOK    bool
	}{
		{
			name:      "token line is the whole message",
			body:      "RequestID:_dG9rZW4=_",
			wantToken: "dG9rZW4=",
			wantOK:    true,
		},
		{
			name:      "token line after message text",
			body:      "would like on-call coverage\nfrom: *2024-01-01 09:00*\n\nRequestID:_dG9rZW4=_",
			wantToken: "dG9rZW4=",
			wantOK:    true,
		},
		{
			name:      "trailing newline after token line",
			body:      "hello\nRequestID:_dG9rZW4=_\n",
			wantToken: "dG9rZW4=",
			wantOK:    true,
		},
		{
			name:   "no token line",
			body:   "just chatting about on-call",
			wantOK: false,
		},
		{
			name:   "token line not last",
			body:   "RequestID:_dG9rZW4=_\nsomeone replied below",
			wantOK: false,
		},
		{
			name:   "prefix without terminator",
			body:   "RequestID:_dG9rZW4=",
			wantOK: false,
		},
		{
			name:   "bare prefix",
			body:   "RequestID:_",
			wantOK: false,
		},
		{
			name:   "empty message",
			body:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := domain.ExtractToken(tt.body)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// A posted request message must round-trip through extraction and
// decoding back to the request it was built from.
func TestTokenLine_ExtractRoundTrip(t *testing.T) {
	request := domain.SwapRequest{
		Requestor: "U1",
		Window: domain.Window{
			StartDate: "2024-01-01", StartTime: "09:00",
			EndDate: "2024-01-02", EndTime: "09:00",
		},
	}

	token, err := domain.EncodeToken(request)
	require.NoError(t, err)

	body := "some request text\n\n" + domain.TokenLine(token)

	extracted, ok := domain.ExtractToken(body)
	require.True(t, ok)

	decoded, err := domain.DecodeToken(extracted)
	require.NoError(t, err)
	assert.Equal(t, request, decoded)
}
