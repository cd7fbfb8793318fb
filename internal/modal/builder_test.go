package modal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderedOption struct {
	Text struct {
		Text string `json:"text"`
	} `json:"text"`
	Value string `json:"value"`
}

type renderedElement struct {
	Type        string           `json:"type"`
	ActionID    string           `json:"action_id"`
	InitialDate string           `json:"initial_date"`
	Options     []renderedOption `json:"options"`
}

type renderedBlock struct {
	Type    string          `json:"type"`
	BlockID string          `json:"block_id"`
	Element renderedElement `json:"element"`
}

type renderedView struct {
	Type            string          `json:"type"`
	CallbackID      string          `json:"callback_id"`
	PrivateMetadata string          `json:"private_metadata"`
	Blocks          []renderedBlock `json:"blocks"`
}

func buildView(t *testing.T, channel string) renderedView {
	t.Helper()

	builder, err := NewBuilder()
	require.NoError(t, err)
	builder.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}

	raw, err := builder.Build(channel)
	require.NoError(t, err)

	var view renderedView
	require.NoError(t, json.Unmarshal(raw, &view))
	return view
}

func elementByBlockID(t *testing.T, view renderedView, blockID string) renderedElement {
	t.Helper()
	for _, block := range view.Blocks {
		if block.BlockID == blockID {
			return block.Element
		}
	}
	t.Fatalf("no block %q in view", blockID)
	return renderedElement{}
}

func TestNewBuilder(t *testing.T) {
	builder, err := NewBuilder()

	require.NoError(t, err)
	assert.NotNil(t, builder)
}

func TestBuilder_Build_SetsChannelMetadata(t *testing.T) {
	view := buildView(t, "C42")

	assert.Equal(t, "modal", view.Type)
	assert.Equal(t, "swap_request", view.CallbackID)
	assert.Equal(t, "C42", view.PrivateMetadata)
}

func TestBuilder_Build_TimePickersCoverTheDay(t *testing.T) {
	view := buildView(t, "C1")

	for _, blockID := range []string{"start_time", "end_time"} {
		element := elementByBlockID(t, view, blockID)

		assert.Equal(t, "static_select", element.Type)
		require.Len(t, element.Options, 48, blockID)
		assert.Equal(t, "00:00", element.Options[0].Value)
		assert.Equal(t, "09:30", element.Options[19].Value)
		assert.Equal(t, "23:30", element.Options[47].Value)

		for _, option := range element.Options {
			assert.Equal(t, option.Value, option.Text.Text)
		}
	}
}

func TestBuilder_Build_DatePickersDefaultToToday(t *testing.T) {
	view := buildView(t, "C1")

	for _, blockID := range []string{"start_date", "end_date"} {
		element := elementByBlockID(t, view, blockID)

		assert.Equal(t, "datepicker", element.Type)
		assert.Equal(t, "2024-03-15", element.InitialDate, blockID)
	}
}

func TestBuilder_Build_BlockAndActionIDsMatch(t *testing.T) {
	// The submission parser reads state values at [block_id][action_id],
	// so the two must agree for every input.
	view := buildView(t, "C1")

	inputs := 0
	for _, block := range view.Blocks {
		if block.Type != "input" {
			continue
		}
		inputs++
		assert.Equal(t, block.BlockID, block.Element.ActionID)
	}
	assert.Equal(t, 4, inputs)
}

func TestBuilder_Build_StripsTemplateMarkers(t *testing.T) {
	builder, err := NewBuilder()
	require.NoError(t, err)

	raw, err := builder.Build("C1")
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(raw), "_add_time_picker"))
	assert.False(t, strings.Contains(string(raw), "_initial_date_today"))
}

func TestBuilder_Build_ViewsAreIndependent(t *testing.T) {
	builder, err := NewBuilder()
	require.NoError(t, err)

	first, err := builder.Build("C1")
	require.NoError(t, err)
	second, err := builder.Build("C2")
	require.NoError(t, err)

	var firstView, secondView renderedView
	require.NoError(t, json.Unmarshal(first, &firstView))
	require.NoError(t, json.Unmarshal(second, &secondView))

	assert.Equal(t, "C1", firstView.PrivateMetadata)
	assert.Equal(t, "C2", secondView.PrivateMetadata)
	assert.Len(t, elementByBlockID(t, secondView, "start_time").Options, 48)
}
