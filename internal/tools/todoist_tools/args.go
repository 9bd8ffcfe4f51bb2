package todoist_tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

// defaultPageSize is used when a listing tool is called without limit.
const defaultPageSize = 50

// arguments wraps the raw JSON arguments of a tool call. Every accessor
// returns a *todoist.ValidationError naming the offending argument.
// Unknown arguments are ignored.
type arguments map[string]any

func invalid(field, constraint string) error {
	return &todoist.ValidationError{Field: field, Constraint: constraint}
}

// has reports whether key was supplied with a non-null value.
func (a arguments) has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// requiredID returns a non-blank identifier.
func (a arguments) requiredID(key string) (string, error) {
	if !a.has(key) {
		return "", todoist.Required(key)
	}
	s, ok := a[key].(string)
	if !ok {
		return "", invalid(key, "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(key, "must not be blank")
	}
	return s, nil
}

// optionalID returns "" when key is absent, or a non-blank identifier.
func (a arguments) optionalID(key string) (string, error) {
	if !a.has(key) {
		return "", nil
	}
	return a.requiredID(key)
}

// requiredText returns non-blank free text, untrimmed.
func (a arguments) requiredText(key string) (string, error) {
	if !a.has(key) {
		return "", todoist.Required(key)
	}
	s, ok := a[key].(string)
	if !ok {
		return "", invalid(key, "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", invalid(key, "must not be blank")
	}
	return s, nil
}

// optionalString returns a pointer to the value when key is present.
// An empty string is kept: for updates it clears the field.
func (a arguments) optionalString(key string) (*string, error) {
	if !a.has(key) {
		return nil, nil
	}
	s, ok := a[key].(string)
	if !ok {
		return nil, invalid(key, "must be a string")
	}
	return &s, nil
}

// stringValue is optionalString flattened to "" for absent values.
func (a arguments) stringValue(key string) (string, error) {
	s, err := a.optionalString(key)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

func (a arguments) optionalBool(key string) (*bool, error) {
	if !a.has(key) {
		return nil, nil
	}
	b, ok := a[key].(bool)
	if !ok {
		return nil, invalid(key, "must be a boolean")
	}
	return &b, nil
}

// optionalInt accepts JSON numbers without a fractional part.
func (a arguments) optionalInt(key string) (*int, error) {
	if !a.has(key) {
		return nil, nil
	}

	var f float64
	switch v := a[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, invalid(key, "must be an integer")
		}
		f = parsed
	default:
		return nil, invalid(key, "must be an integer")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, invalid(key, "must be an integer")
	}
	if math.Abs(f) > math.MaxInt32 {
		return nil, invalid(key, "is out of range")
	}
	n := int(f)
	return &n, nil
}

// intInRange is optionalInt bounded to [lo, hi].
func (a arguments) intInRange(key string, lo, hi int) (*int, error) {
	n, err := a.optionalInt(key)
	if err != nil || n == nil {
		return nil, err
	}
	if *n < lo || *n > hi {
		return nil, invalid(key, fmt.Sprintf("must be between %d and %d", lo, hi))
	}
	return n, nil
}

func (a arguments) priority() (*int, error) {
	return a.intInRange("priority", todoist.MinPriority, todoist.MaxPriority)
}

// page returns the limit and cursor of a listing tool.
func (a arguments) page() (todoist.PageOptions, error) {
	limit, err := a.intInRange("limit", 1, todoist.MaxPageSize)
	if err != nil {
		return todoist.PageOptions{}, err
	}
	cursor, err := a.stringValue("cursor")
	if err != nil {
		return todoist.PageOptions{}, err
	}

	opts := todoist.PageOptions{Cursor: cursor, Limit: defaultPageSize}
	if limit != nil {
		opts.Limit = *limit
	}
	return opts, nil
}

func (a arguments) viewStyle() (*string, error) {
	s, err := a.optionalString("view_style")
	if err != nil || s == nil {
		return nil, err
	}
	switch *s {
	case todoist.ViewStyleList, todoist.ViewStyleBoard, todoist.ViewStyleCalendar:
		return s, nil
	default:
		return nil, invalid("view_style", "must be one of list, board, calendar")
	}
}

// date validates a YYYY-MM-DD argument.
func (a arguments) date(key string) (*string, error) {
	s, err := a.optionalString(key)
	if err != nil || s == nil {
		return nil, err
	}
	if _, err := time.Parse(time.DateOnly, *s); err != nil {
		return nil, invalid(key, "must be a date in YYYY-MM-DD format")
	}
	return s, nil
}

// datetime validates an RFC 3339 argument.
func (a arguments) datetime(key string) (*string, error) {
	s, err := a.optionalString(key)
	if err != nil || s == nil {
		return nil, err
	}
	if _, err := time.Parse(time.RFC3339, *s); err != nil {
		return nil, invalid(key, "must be an RFC 3339 datetime")
	}
	return s, nil
}

// stringList accepts an array of strings or a comma separated string.
// Blank entries are dropped. The boolean reports whether key was present,
// so an explicit empty list can clear a field.
func (a arguments) stringList(key string) ([]string, bool, error) {
	if !a.has(key) {
		return nil, false, nil
	}

	var raw []string
	switch v := a[key].(type) {
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, true, invalid(key, fmt.Sprintf("item %d must be a string", i))
			}
			raw = append(raw, s)
		}
	default:
		return nil, true, invalid(key, "must be an array of strings or a comma separated string")
	}

	list := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}
	return list, true, nil
}

// exactlyOne returns the single supplied identifier among keys.
func (a arguments) exactlyOne(keys ...string) (string, string, error) {
	var chosen, value string
	for _, key := range keys {
		id, err := a.optionalID(key)
		if err != nil {
			return "", "", err
		}
		if id == "" {
			continue
		}
		if chosen != "" {
			return "", "", invalid(strings.Join(keys, "|"), "exactly one of "+strings.Join(keys, ", ")+" must be set")
		}
		chosen, value = key, id
	}
	if chosen == "" {
		return "", "", invalid(strings.Join(keys, "|"), "exactly one of "+strings.Join(keys, ", ")+" must be set")
	}
	return chosen, value, nil
}

// atMostOne rejects calls supplying more than one of keys.
func (a arguments) atMostOne(keys ...string) error {
	set := 0
	for _, key := range keys {
		if a.has(key) {
			set++
		}
	}
	if set > 1 {
		return invalid(strings.Join(keys, "|"), "at most one of "+strings.Join(keys, ", ")+" may be set")
	}
	return nil
}

// anyOf rejects update calls that change nothing.
func (a arguments) anyOf(keys ...string) error {
	for _, key := range keys {
		if a.has(key) {
			return nil
		}
	}
	return invalid(strings.Join(keys, "|"), "at least one field to update is required")
}

// duration validates the duration and duration_unit pair.
func (a arguments) duration() (*int, *string, error) {
	amount, err := a.optionalInt("duration")
	if err != nil {
		return nil, nil, err
	}
	unit, err := a.optionalString("duration_unit")
	if err != nil {
		return nil, nil, err
	}

	switch {
	case amount == nil && unit == nil:
		return nil, nil, nil
	case amount == nil:
		return nil, nil, invalid("duration", "is required when duration_unit is set")
	case unit == nil:
		return nil, nil, invalid("duration_unit", "is required when duration is set")
	}

	if *amount <= 0 {
		return nil, nil, invalid("duration", "must be greater than 0")
	}
	if *unit != todoist.DurationUnitMinute && *unit != todoist.DurationUnitDay {
		return nil, nil, invalid("duration_unit", "must be one of minute, day")
	}
	return amount, unit, nil
}
