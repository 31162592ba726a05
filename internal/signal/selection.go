package signal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// relayout event keys, as sent by the chart on pan/zoom/reset
const (
	KeyRangeStart = "xaxis.range[0]"
	KeyRangeEnd   = "xaxis.range[1]"
	KeyRange      = "xaxis.range"
	KeyAutorange  = "xaxis.autorange"
)

var ErrInvalidSelection = errors.New("invalid selection")

// Selection is a sub-range [Start, End] of a signal, in sample indices.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Length is the number of samples between start and end, as the
// dashboard always reported it to the backend (end - start).
func (s Selection) Length() int {
	return s.End - s.Start
}

// Validate checks ordering and, when rowsCount > 0, index bounds.
func (s Selection) Validate(rowsCount int) error {
	if s.Start < 0 {
		return fmt.Errorf("%w: start %d is negative", ErrInvalidSelection, s.Start)
	}
	if s.Start >= s.End {
		return fmt.Errorf("%w: start %d not before end %d", ErrInvalidSelection, s.Start, s.End)
	}
	if rowsCount > 0 && s.End > rowsCount-1 {
		return fmt.Errorf("%w: end %d out of range [0, %d]", ErrInvalidSelection, s.End, rowsCount-1)
	}
	return nil
}

// RelayoutEvent is the loosely structured payload of a chart viewport change.
type RelayoutEvent map[string]any

// ParseRelayoutEvent decodes a raw relayout payload, keeping numbers as json.Number.
func ParseRelayoutEvent(data []byte) (RelayoutEvent, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var ev RelayoutEvent
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("decode relayout event: %w", err)
	}
	return ev, nil
}

// ComputeSelectedRange translates a relayout event into a selection:
//   - explicit bounds (two scalars, or an array of two) give a new rounded selection
//   - an autorange event clears the selection (nil)
//   - anything else leaves current unchanged
//
// A range that is empty or reversed after rounding is rejected, and current is kept.
func ComputeSelectedRange(event RelayoutEvent, current *Selection) *Selection {
	return Selector{}.Apply(event, current)
}

// Selector is ComputeSelectedRange bound to a signal length. With RowsCount > 0
// both bounds are clamped to [0, RowsCount-1] before the ordering check.
type Selector struct {
	RowsCount int
}

func (s Selector) Apply(event RelayoutEvent, current *Selection) *Selection {
	if event == nil {
		return current
	}

	start, end, ok := explicitBounds(event)
	if !ok {
		if autorange, _ := event[KeyAutorange].(bool); autorange {
			return nil
		}
		return current
	}

	startIdx, okStart := s.clamp(math.Round(start))
	endIdx, okEnd := s.clamp(math.Round(end))
	if !okStart || !okEnd || startIdx >= endIdx {
		return current
	}
	return &Selection{Start: startIdx, End: endIdx}
}

// clamp turns a rounded bound into an index. Without a known signal length
// there is nothing to clamp to, so bounds below 0 or past the int range are
// rejected instead.
func (s Selector) clamp(v float64) (int, bool) {
	if s.RowsCount <= 0 {
		if v < 0 || v >= math.MaxInt {
			return 0, false
		}
		return int(v), true
	}
	if v < 0 {
		return 0, true
	}
	if last := float64(s.RowsCount - 1); v > last {
		return s.RowsCount - 1, true
	}
	return int(v), true
}

// explicitBounds returns the two bounds if the event carries them in a usable form.
// The scalar pair takes precedence over the array form.
func explicitBounds(event RelayoutEvent) (float64, float64, bool) {
	rawStart, hasStart := event[KeyRangeStart]
	rawEnd, hasEnd := event[KeyRangeEnd]
	if hasStart && hasEnd {
		start, okStart := toFloat(rawStart)
		end, okEnd := toFloat(rawEnd)
		return start, end, okStart && okEnd
	}

	arr, isArr := event[KeyRange].([]any)
	if !isArr || len(arr) != 2 {
		return 0, 0, false
	}
	start, okStart := toFloat(arr[0])
	end, okEnd := toFloat(arr[1])
	return start, end, okStart && okEnd
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
