package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/fomo-ops/fomobot/internal/application"
)

// MockMessageStore is an in-memory MessageStore with the same
// delete-once semantics as the real platform: deleting a message that
// is already gone fails with ErrMessageNotFound. Individual methods
// can be overridden through the Fn fields.
type MockMessageStore struct {
	mu       sync.Mutex
	messages map[string]string
	posted   []PostedMessage
	calls    map[string]int
	nextRef  int

	PostMessageFn   func(ctx context.Context, channel, text string) (application.MessageRef, error)
	FetchMessageFn  func(ctx context.Context, channel string, ref application.MessageRef) (string, error)
	DeleteMessageFn func(ctx context.Context, channel string, ref application.MessageRef) error
}

// PostedMessage records one PostMessage call in arrival order.
type PostedMessage struct {
	Channel string
	Text    string
	Ref     application.MessageRef
}

func NewMockMessageStore() *MockMessageStore {
	return &MockMessageStore{
		messages: make(map[string]string),
		calls:    make(map[string]int),
	}
}

func (m *MockMessageStore) key(channel string, ref application.MessageRef) string {
	return channel + "/" + string(ref)
}

func (m *MockMessageStore) inc(method string) {
	m.calls[method]++
}

// GetCalls returns how many times a method was invoked.
func (m *MockMessageStore) GetCalls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Posted returns every message posted so far, in order.
func (m *MockMessageStore) Posted() []PostedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PostedMessage, len(m.posted))
	copy(out, m.posted)
	return out
}

// Contains reports whether the message at ref still exists.
func (m *MockMessageStore) Contains(channel string, ref application.MessageRef) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.messages[m.key(channel, ref)]
	return ok
}

func (m *MockMessageStore) PostMessage(ctx context.Context, channel, text string) (application.MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inc("PostMessage")
	if m.PostMessageFn != nil {
		return m.PostMessageFn(ctx, channel, text)
	}
	m.nextRef++
	ref := application.MessageRef(fmt.Sprintf("1700000000.%06d", m.nextRef))
	m.messages[m.key(channel, ref)] = text
	m.posted = append(m.posted, PostedMessage{Channel: channel, Text: text, Ref: ref})
	return ref, nil
}

func (m *MockMessageStore) FetchMessage(ctx context.Context, channel string, ref application.MessageRef) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inc("FetchMessage")
	if m.FetchMessageFn != nil {
		return m.FetchMessageFn(ctx, channel, ref)
	}
	body, ok := m.messages[m.key(channel, ref)]
	if !ok {
		return "", application.ErrMessageNotFound
	}
	return body, nil
}

func (m *MockMessageStore) DeleteMessage(ctx context.Context, channel string, ref application.MessageRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inc("DeleteMessage")
	if m.DeleteMessageFn != nil {
		return m.DeleteMessageFn(ctx, channel, ref)
	}
	key := m.key(channel, ref)
	if _, ok := m.messages[key]; !ok {
		return application.ErrMessageNotFound
	}
	delete(m.messages, key)
	return nil
}

// MockNotifier records downstream events. Publish behavior can be
// overridden through SwapConfirmedFn.
type MockNotifier struct {
	mu     sync.Mutex
	events []application.SwapConfirmedEvent

	SwapConfirmedFn func(ctx context.Context, event application.SwapConfirmedEvent) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SwapConfirmed(ctx context.Context, event application.SwapConfirmedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SwapConfirmedFn != nil {
		return m.SwapConfirmedFn(ctx, event)
	}
	m.events = append(m.events, event)
	return nil
}

// Events returns every published event so far, in order.
func (m *MockNotifier) Events() []application.SwapConfirmedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]application.SwapConfirmedEvent, len(m.events))
	copy(out, m.events)
	return out
}
