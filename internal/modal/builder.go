// Package modal renders the swap request dialog from an embedded
// template. The template carries two private markers on its elements:
// "_add_time_picker" swaps in the half-hour option list and
// "_initial_date_today" pins a datepicker to the current day. Markers
// never reach the platform.
package modal

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
)

//go:embed swap_modal.json
var swapModalJSON []byte

// Builder turns the embedded template into ready-to-open views.
type Builder struct {
	options []map[string]any

	// Injectable for tests.
	now func() time.Time
}

// NewBuilder validates the embedded template up front so a broken
// template fails at startup, not on the first slash command.
func NewBuilder() (*Builder, error) {
	b := &Builder{
		options: timeOptions(),
		now:     time.Now,
	}

	if _, err := b.Build("validate"); err != nil {
		return nil, fmt.Errorf("swap modal template: %w", err)
	}

	return b, nil
}

// Build renders the swap request modal. The originating channel rides
// along in private_metadata so the submission can be routed back to
// where the slash command was typed.
func (b *Builder) Build(channel string) (json.RawMessage, error) {
	var view map[string]any
	if err := json.Unmarshal(swapModalJSON, &view); err != nil {
		return nil, fmt.Errorf("parse swap modal template: %w", err)
	}

	if err := b.decorate(view); err != nil {
		return nil, err
	}
	view["private_metadata"] = channel

	return json.Marshal(view)
}

func (b *Builder) decorate(view map[string]any) error {
	blocks, ok := view["blocks"].([]any)
	if !ok {
		return errors.New("no blocks")
	}

	today := b.now().Format("2006-01-02")
	decorated := 0

	for _, raw := range blocks {
		block, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		element, ok := block["element"].(map[string]any)
		if !ok {
			continue
		}

		if popFlag(element, "_add_time_picker") {
			element["options"] = b.options
			decorated++
		}
		if popFlag(element, "_initial_date_today") {
			element["initial_date"] = today
			decorated++
		}
	}

	if decorated == 0 {
		return errors.New("no picker markers")
	}
	return nil
}

func popFlag(element map[string]any, key string) bool {
	flag, ok := element[key].(bool)
	if ok {
		delete(element, key)
	}
	return ok && flag
}

// timeOptions covers the day in half-hour steps, 00:00 through 23:30.
func timeOptions() []map[string]any {
	slots := make([]string, 0, 48)
	for hour := 0; hour < 24; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}

	return lo.Map(slots, func(slot string, _ int) map[string]any {
		return map[string]any{
			"text": map[string]any{
				"type":  "plain_text",
				"text":  slot,
				"emoji": true,
			},
			"value": slot,
		}
	})
}
