package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: "json", Service: "BirthdayPresentTracker", Output: &buf})

	ctx := WithCorrelationID(context.Background(), "req-123")
	FromContext(ctx, logger).Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry[CorrelationIDField] != "req-123" {
		t.Errorf("correlation_id = %v, want req-123", entry[CorrelationIDField])
	}
	if entry["service"] != "BirthdayPresentTracker" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestWithCorrelationID_Empty(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	if got := CorrelationID(ctx); got != "" {
		t.Errorf("CorrelationID() = %q, want empty", got)
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(Options{Level: tt.level})
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}
