package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

const (
	tokenLinePrefix     = "RequestID:_"
	tokenLineTerminator = "_"
)

// tokenWire is the JSON shape embedded in request messages. The short
// keys are load-bearing: tokens carried by messages posted before a
// deploy must keep decoding after it, so they can never change.
type tokenWire struct {
	Requestor string `json:"ru" validate:"required"`
	StartDate string `json:"sd" validate:"required"`
	StartTime string `json:"st" validate:"required"`
	EndDate   string `json:"ed" validate:"required"`
	EndTime   string `json:"et" validate:"required"`
}

// EncodeToken serializes a swap request into the opaque string carried
// by the request message. Standard base64 keeps the token free of the
// newline and underscore characters that delimit it in the message.
func EncodeToken(request SwapRequest) (string, error) {
	payload, err := json.Marshal(tokenWire{
		Requestor: request.Requestor,
		StartDate: request.Window.StartDate,
		StartTime: request.Window.StartTime,
		EndDate:   request.Window.EndDate,
		EndTime:   request.Window.EndTime,
	})
	if err != nil {
		return "", fmt.Errorf("encode swap token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeToken reverses EncodeToken. JSON with any key order or spacing
// is accepted, so tokens minted by other writers decode too. Malformed
// input of any kind fails with an error wrapping ErrBadToken; decoding
// never panics.
func DecodeToken(token string) (SwapRequest, error) {
	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return SwapRequest{}, fmt.Errorf("%w: invalid base64: %v", ErrBadToken, err)
	}

	var wire tokenWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return SwapRequest{}, fmt.Errorf("%w: invalid payload: %v", ErrBadToken, err)
	}
	if err := validator.New().Struct(wire); err != nil {
		return SwapRequest{}, fmt.Errorf("%w: missing fields: %v", ErrBadToken, err)
	}

	return SwapRequest{
		Requestor: wire.Requestor,
		Window: Window{
			StartDate: wire.StartDate,
			StartTime: wire.StartTime,
			EndDate:   wire.EndDate,
			EndTime:   wire.EndTime,
		},
	}, nil
}

// TokenLine renders the sentinel line that anchors a token inside a
// request message. It must be the message's last line.
func TokenLine(token string) string {
	return tokenLinePrefix + token + tokenLineTerminator
}

// ExtractToken pulls the encoded token out of a message body. The
// token sits on the last line, between the sentinel prefix and the
// closing underscore. ok is false when the last line is not a token
// line, which is how foreign messages are recognized.
func ExtractToken(body string) (token string, ok bool) {
	body = strings.TrimRight(body, "\n")
	last := body
	if idx := strings.LastIndexByte(body, '\n'); idx >= 0 {
		last = body[idx+1:]
	}
	if len(last) <= len(tokenLinePrefix) || !strings.HasPrefix(last, tokenLinePrefix) {
		return "", false
	}
	if !strings.HasSuffix(last, tokenLineTerminator) {
		return "", false
	}
	return last[len(tokenLinePrefix) : len(last)-len(tokenLineTerminator)], true
}
