package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	pnet "maintkpi/internal/platform/net"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	got := compact("SELECT id\n\t  FROM work_orders\r\n WHERE year = $1 ")
	if got != "SELECT id FROM work_orders WHERE year = $1" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracerLevels(t *testing.T) {
	cases := []struct {
		name  string
		ev    QueryEvent
		level string
	}{
		{"normal", QueryEvent{SQL: "SELECT 1"}, "info"},
		{"slow", QueryEvent{SQL: "SELECT 1", Slow: true}, "warn"},
		{"failed", QueryEvent{SQL: "SELECT 1", Slow: true, Err: errors.New("boom")}, "error"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
		ctx := pnet.WithRequestID(context.Background(), "rid-1")

		Tracer(root).OnQuery(ctx, c.ev)

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("%s: decode %q: %v", c.name, buf.String(), err)
		}
		if line["level"] != c.level || line["component"] != "pg" || line["request_id"] != "rid-1" {
			t.Fatalf("%s: line %v", c.name, line)
		}
	}
}

func TestOpenRejectsBadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "::bad::"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
