package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "production")
	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be dropped in production, got %q", buf.String())
	}
	l.Info().Msg("shown")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if line["message"] != "shown" || line["service"] != "qrt-api" {
		t.Fatalf("unexpected line: %v", line)
	}

	buf.Reset()
	dev := NewWriter(&buf, "dev")
	dev.Debug().Msg("visible")
	if buf.Len() == 0 {
		t.Fatalf("debug should be logged in dev")
	}
}
