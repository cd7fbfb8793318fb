// Package slack talks to the Slack Web API. It implements the message
// store and modal opener ports and resolves the bot's own identity.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/config"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(cfg config.SlackConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// Identity is who the platform says we are.
type Identity struct {
	UserID string
	User   string
	Team   string
}

type postMessageResponse struct {
	envelope
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

type historyResponse struct {
	envelope
	Messages []historyMessage `json:"messages"`
}

type historyMessage struct {
	Text string `json:"text"`
	TS   string `json:"ts"`
}

type deleteResponse struct {
	envelope
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

type authTestResponse struct {
	envelope
	UserID string `json:"user_id"`
	User   string `json:"user"`
	Team   string `json:"team"`
}

type viewsOpenResponse struct {
	envelope
}

// PostMessage publishes text to a channel and returns the new
// message's timestamp ref.
func (c *Client) PostMessage(ctx context.Context, channel, text string) (application.MessageRef, error) {
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("text", text)

	resp, err := sendRequest[postMessageResponse](c, ctx, "chat.postMessage", params)
	if err != nil {
		return "", err
	}
	return application.MessageRef(resp.TS), nil
}

// FetchMessage returns the body of exactly the message at ref. The
// history API anchored at ref with inclusive=true returns the message
// itself when it exists and the nearest older message when it does
// not, so the returned timestamp is checked before trusting the body.
func (c *Client) FetchMessage(ctx context.Context, channel string, ref application.MessageRef) (string, error) {
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("latest", string(ref))
	params.Set("inclusive", "true")
	params.Set("limit", "1")

	resp, err := sendRequest[historyResponse](c, ctx, "conversations.history", params)
	if err != nil {
		return "", err
	}
	if len(resp.Messages) == 0 || resp.Messages[0].TS != string(ref) {
		return "", fmt.Errorf("%w: no message at %s", application.ErrMessageNotFound, ref)
	}
	return resp.Messages[0].Text, nil
}

// DeleteMessage removes the message at ref. A message that is already
// gone maps to ErrMessageNotFound so callers can tell a lost race from
// a platform failure.
func (c *Client) DeleteMessage(ctx context.Context, channel string, ref application.MessageRef) error {
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("ts", string(ref))

	_, err := sendRequest[deleteResponse](c, ctx, "chat.delete", params)
	if apiErr, ok := IsAPIError(err); ok {
		switch apiErr.Code {
		case "message_not_found", "channel_not_found":
			return fmt.Errorf("%w: %s", application.ErrMessageNotFound, ref)
		}
	}
	return err
}

// OpenView opens a modal in response to a user interaction. view is
// the platform's view JSON, passed through untouched.
func (c *Client) OpenView(ctx context.Context, triggerID string, view json.RawMessage) error {
	params := url.Values{}
	params.Set("trigger_id", triggerID)
	params.Set("view", string(view))

	_, err := sendRequest[viewsOpenResponse](c, ctx, "views.open", params)
	return err
}

// AuthTest resolves the bot's own identity. Called once at startup;
// the reaction filter needs the user ID to recognize the bot's own
// messages.
func (c *Client) AuthTest(ctx context.Context) (Identity, error) {
	resp, err := sendRequest[authTestResponse](c, ctx, "auth.test", url.Values{})
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		UserID: resp.UserID,
		User:   resp.User,
		Team:   resp.Team,
	}, nil
}

// sendRequest posts one Web API call and decodes its envelope. The
// platform reports most failures inside a 200 response, so both the
// HTTP status and the ok flag get checked.
func sendRequest[Resp any](c *Client, ctx context.Context, method string, params url.Values) (*Resp, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, method)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &APIError{
			Method:     method,
			Code:       "rate_limited",
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			Method:     method,
			Code:       fmt.Sprintf("http_%d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("error decoding %s response: %w", method, err)
	}
	if !env.OK {
		return nil, &APIError{
			Method:     method,
			Code:       env.Error,
			StatusCode: resp.StatusCode,
		}
	}

	var out Resp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("error decoding %s response: %w", method, err)
	}
	return &out, nil
}

func parseRetryAfter(header http.Header) time.Duration {
	seconds, err := strconv.Atoi(header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
