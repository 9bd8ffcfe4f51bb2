package todoist_tools

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

func validationField(t *testing.T, err error) string {
	t.Helper()
	var verr *todoist.ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	return verr.Field
}

func TestArguments_OptionalInt(t *testing.T) {
	tests := []struct {
		name           string
		value          any
		want           int
		wantConstraint string
	}{
		{name: "json float", value: 3.0, want: 3},
		{name: "negative", value: -2.0, want: -2},
		{name: "int", value: 7, want: 7},
		{name: "int64", value: int64(9), want: 9},
		{name: "json number", value: json.Number("12"), want: 12},
		{name: "largest accepted", value: float64(math.MaxInt32), want: math.MaxInt32},
		{name: "fraction", value: 1.25, wantConstraint: "must be an integer"},
		{name: "string", value: "3", wantConstraint: "must be an integer"},
		{name: "bool", value: true, wantConstraint: "must be an integer"},
		{name: "huge", value: 1e12, wantConstraint: "is out of range"},
		{name: "huge negative", value: -1e10, wantConstraint: "is out of range"},
		{name: "huge int64", value: int64(1) << 40, wantConstraint: "is out of range"},
		{name: "huge json number", value: json.Number("5000000000"), wantConstraint: "is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := arguments{"n": tt.value}.optionalInt("n")
			if tt.wantConstraint != "" {
				assert.Equal(t, "n", validationField(t, err))
				var verr *todoist.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantConstraint, verr.Constraint)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, n)
			assert.Equal(t, tt.want, *n)
		})
	}

	n, err := arguments{}.optionalInt("n")
	assert.NoError(t, err)
	assert.Nil(t, n)

	n, err = arguments{"n": nil}.optionalInt("n")
	assert.NoError(t, err)
	assert.Nil(t, n, "null counts as absent")
}

func TestArguments_StringList(t *testing.T) {
	tests := []struct {
		name    string
		args    arguments
		want    []string
		present bool
		wantErr bool
	}{
		{name: "absent", args: arguments{}},
		{name: "array", args: arguments{"l": []any{"a", " b "}}, want: []string{"a", "b"}, present: true},
		{name: "comma string", args: arguments{"l": "a, b,,c"}, want: []string{"a", "b", "c"}, present: true},
		{name: "empty array clears", args: arguments{"l": []any{}}, want: []string{}, present: true},
		{name: "non string item", args: arguments{"l": []any{"a", 2.0}}, present: true, wantErr: true},
		{name: "object", args: arguments{"l": map[string]any{}}, present: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, present, err := tt.args.stringList("l")
			assert.Equal(t, tt.present, present)
			if tt.wantErr {
				assert.Equal(t, "l", validationField(t, err))
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, list)
			} else {
				assert.Equal(t, tt.want, list)
			}
		})
	}
}

func TestArguments_ExactlyOne(t *testing.T) {
	key, value, err := arguments{"b": " x "}.exactlyOne("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "b", key)
	assert.Equal(t, "x", value)

	_, _, err = arguments{}.exactlyOne("a", "b")
	assert.Equal(t, "a|b", validationField(t, err))

	_, _, err = arguments{"a": "1", "b": "2"}.exactlyOne("a", "b")
	assert.Equal(t, "a|b", validationField(t, err))

	_, _, err = arguments{"a": ""}.exactlyOne("a", "b")
	assert.Equal(t, "a", validationField(t, err), "blank identifiers are rejected, not skipped")
}

func TestArguments_Page(t *testing.T) {
	opts, err := arguments{}.page()
	require.NoError(t, err)
	assert.Equal(t, todoist.PageOptions{Limit: defaultPageSize}, opts)

	opts, err = arguments{"limit": 200.0, "cursor": "c"}.page()
	require.NoError(t, err)
	assert.Equal(t, todoist.PageOptions{Limit: 200, Cursor: "c"}, opts)

	_, err = arguments{"cursor": 5.0}.page()
	assert.Equal(t, "cursor", validationField(t, err))
}

func TestArguments_Dates(t *testing.T) {
	d, err := arguments{"d": "2025-02-28"}.date("d")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", *d)

	_, err = arguments{"d": "2025-02-30"}.date("d")
	assert.Error(t, err)

	dt, err := arguments{"dt": "2025-02-28T09:30:00Z"}.datetime("dt")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28T09:30:00Z", *dt)

	_, err = arguments{"dt": "2025-02-28"}.datetime("dt")
	assert.Error(t, err)
}
