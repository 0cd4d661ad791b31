package budget

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTracker_RecordsBothKinds(t *testing.T) {
	tracker := NewTracker(5, zerolog.Nop())

	if d := tracker.RecordTimeout(); d != Continue {
		t.Errorf("first timeout = %v, want continue", d)
	}
	if d := tracker.RecordTransport(); d != Continue {
		t.Errorf("first transport failure = %v, want continue", d)
	}
	if tracker.Failures() != 2 {
		t.Errorf("Failures() = %d, want 2", tracker.Failures())
	}
}

func TestTracker_LogsExhaustion(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)

	tracker := NewTracker(1, logger)
	tracker.RecordTransport() // count 1 >= max 1

	output := buf.String()
	if !strings.Contains(output, "failure budget exhausted") {
		t.Errorf("Expected exhaustion log, got %q", output)
	}
	if !strings.Contains(output, `"failures":1`) {
		t.Errorf("Expected failures field in log, got %q", output)
	}
}

func TestTracker_HaltMatchesStateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		record  func(*Tracker) Decision
		prime   int // timeouts recorded before the decisive call
		decided Decision
	}{
		{
			name:    "timeout at max continues",
			max:     3,
			prime:   2,
			record:  (*Tracker).RecordTimeout,
			decided: Continue,
		},
		{
			name:    "timeout past max halts",
			max:     3,
			prime:   3,
			record:  (*Tracker).RecordTimeout,
			decided: Halt,
		},
		{
			name:    "transport at max halts",
			max:     3,
			prime:   2,
			record:  (*Tracker).RecordTransport,
			decided: Halt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(tt.max, zerolog.Nop())
			for i := 0; i < tt.prime; i++ {
				tracker.RecordTimeout()
			}
			if d := tt.record(tracker); d != tt.decided {
				t.Errorf("decision = %v, want %v", d, tt.decided)
			}
		})
	}
}
