package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		format    string
		wantErr   bool
		wantDebug bool
		wantJSON  bool
	}{
		{name: "default text", format: ""},
		{name: "text debug", format: "text", debug: true, wantDebug: true},
		{name: "json", format: "JSON", wantJSON: true},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(&buf, tt.debug, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			logger.Debug("debug line")
			logger.Info("info line")

			out := buf.String()
			assert.Contains(t, out, "info line")
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tt.wantJSON, strings.HasPrefix(out, "{"))
		})
	}
}

func TestAttributes(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		key  string
		val  string
	}{
		{"resource id", ResourceID("123"), KeyResourceID, "123"},
		{"status", Status("success"), KeyStatus, "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.val, tt.attr.Value.String())
		})
	}
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	WithResource(WithTool(WithOperation(base, "get"), "todoist_get_task"), "tasks").Info("hello")

	out := buf.String()
	assert.Contains(t, out, "operation=get")
	assert.Contains(t, out, "tool=todoist_get_task")
	assert.Contains(t, out, "resource=tasks")
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("ok", Err(nil))
	assert.NotContains(t, buf.String(), KeyError)
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	masked := SanitizeToken("0123456789abcdef")
	assert.Equal(t, "[token:16 chars]", masked)
	assert.NotContains(t, masked, "0123")
}

func TestPreview(t *testing.T) {
	tests := []struct {
		content string
		max     int
		want    string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long comment body", 7, "this is..."},
		{"héllo wörld", 5, "héllo..."},
		{"no limit", 0, "no limit"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Preview(tt.content, tt.max))
	}
}
