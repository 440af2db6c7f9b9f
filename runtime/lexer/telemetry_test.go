package lexer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// TestTelemetryOff_ZeroOverhead tests that TelemetryOff allocates nothing
func TestTelemetryOff_ZeroOverhead(t *testing.T) {
	lexer := NewLexer("let test = 123")

	if lexer.tokenTelemetry != nil {
		t.Error("TelemetryOff should not allocate tokenTelemetry map")
	}
	if lexer.debugEvents != nil {
		t.Error("TelemetryOff should not allocate debugEvents slice")
	}

	if _, err := lexer.Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if telemetry := lexer.TokenTelemetry(); telemetry != nil {
		t.Error("TelemetryOff should return nil telemetry")
	}
	if debug := lexer.DebugEvents(); debug != nil {
		t.Error("TelemetryOff should return nil debug events")
	}
}

// TestTelemetryBasic_TokenCounts tests that TelemetryBasic tracks token counts accurately
func TestTelemetryBasic_TokenCounts(t *testing.T) {
	lexer := NewLexer("let test = 123; test = test", WithTelemetryBasic())

	if _, err := lexer.Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	telemetry := lexer.TokenTelemetry()
	if telemetry == nil {
		t.Fatal("TelemetryBasic should return telemetry data")
	}

	expectedCounts := map[TokenType]int{
		LET:             1,
		IDENTIFIER:      3,
		ASSIGN:          2,
		NUMERIC_DECIMAL: 1,
		SEMICOLON:       1,
		EOF:             1,
	}
	if len(telemetry) != len(expectedCounts) {
		t.Errorf("expected %d token types, got %d", len(expectedCounts), len(telemetry))
	}

	for tokenType, expectedCount := range expectedCounts {
		tel, exists := telemetry[tokenType]
		if !exists {
			t.Errorf("Missing telemetry for token type %s", tokenType)
			continue
		}
		if tel.Count != expectedCount {
			t.Errorf("Expected %d %s tokens, got %d", expectedCount, tokenType, tel.Count)
		}
		if tel.Type != tokenType {
			t.Errorf("Expected telemetry type %s, got %s", tokenType, tel.Type)
		}
		if tel.TotalTime != 0 || tel.AvgTime != 0 || tel.MinTime != 0 || tel.MaxTime != 0 {
			t.Errorf("TelemetryBasic should not collect timing data, got TotalTime=%v", tel.TotalTime)
		}
	}
}

// TestTelemetryTiming_PerTokenTypeTiming tests that TelemetryTiming captures per-token-type timing
func TestTelemetryTiming_PerTokenTypeTiming(t *testing.T) {
	lexer := NewLexer("let test = 123", WithTelemetryTiming())

	if _, err := lexer.Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	telemetry := lexer.TokenTelemetry()
	if telemetry == nil {
		t.Fatal("TelemetryTiming should return telemetry data")
	}

	for tokenType, tel := range telemetry {
		if tel.Count <= 0 {
			t.Errorf("Expected positive count for %s, got %d", tokenType, tel.Count)
		}
		if tel.TotalTime < 0 || tel.MinTime < 0 || tel.MaxTime < 0 {
			t.Errorf("Expected non-negative timings for %s", tokenType)
		}
		if tel.Count == 1 && tel.MinTime != tel.MaxTime {
			t.Errorf("For single token %s, MinTime should equal MaxTime, got Min=%v Max=%v", tokenType, tel.MinTime, tel.MaxTime)
		}
		expectedAvg := tel.TotalTime / time.Duration(tel.Count)
		if tel.AvgTime != expectedAvg {
			t.Errorf("AvgTime calculation wrong for %s: expected %v, got %v", tokenType, expectedAvg, tel.AvgTime)
		}
	}
}

func TestTelemetryIsACopy(t *testing.T) {
	lexer := NewLexer("a", WithTelemetryBasic())
	if _, err := lexer.Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := lexer.TokenTelemetry()
	first[IDENTIFIER].Count = 99

	if got := lexer.TokenTelemetry()[IDENTIFIER].Count; got != 1 {
		t.Errorf("caller mutation leaked into lexer, count = %d", got)
	}
}

// TestDebugPaths_MethodTracing tests that DebugPaths records dispatch decisions
func TestDebugPaths_MethodTracing(t *testing.T) {
	lexer := NewLexer("x = 'y'", WithDebugPaths(), WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	if _, err := lexer.Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := lexer.DebugEvents()
	if len(events) == 0 {
		t.Fatal("Expected some debug events")
	}

	seen := map[string]bool{}
	for _, event := range events {
		if event.Event == "" {
			t.Error("Debug event should have event description")
		}
		if event.Position.Line <= 0 || event.Position.Column <= 0 {
			t.Error("Debug event should have valid position")
		}
		seen[event.Event] = true
	}

	for _, want := range []string{"dispatch", "enter_lexIdentifier", "enter_lexString", "finish", "found_EOF"} {
		if !seen[want] {
			t.Errorf("missing %q debug event", want)
		}
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lexer := NewLexer("0x", WithLogger(logger))
	if _, err := lexer.Tokenize(); err == nil {
		t.Fatal("expected an error")
	}

	out := buf.String()
	if !strings.Contains(out, "[LEXER] dispatch") {
		t.Errorf("expected dispatch trace in log, got:\n%s", out)
	}
	if !strings.Contains(out, "[LEXER] Scan failed") {
		t.Errorf("expected failure in log, got:\n%s", out)
	}
	if lexer.DebugEvents() != nil {
		t.Error("logging alone should not record debug events")
	}
}

func TestQuietLoggerSkipsTracing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if _, err := NewLexer("let a = 1", WithLogger(logger)).Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("info-level logger should stay silent, got:\n%s", buf.String())
	}
}

func TestDefaultLoggerHonoursEnv(t *testing.T) {
	t.Setenv(DebugEnvVar, "1")
	lexer := NewLexer("a")
	if !lexer.logDebug {
		t.Errorf("%s should enable debug logging", DebugEnvVar)
	}
}

// TestTelemetryReset tests that telemetry resets correctly with Init
func TestTelemetryReset(t *testing.T) {
	lexer := NewLexer("let test", WithTelemetryTiming(), WithDebugPaths(), WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	if _, err := lexer.Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lexer.TokenTelemetry()) == 0 {
		t.Error("Expected telemetry from first input")
	}

	lexer.Init("123")
	if len(lexer.DebugEvents()) != 0 {
		t.Error("Init should clear debug events")
	}
	if _, err := lexer.Tokenize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for tokenType := range lexer.TokenTelemetry() {
		if tokenType != NUMERIC_DECIMAL && tokenType != EOF {
			t.Errorf("Unexpected token type %s in telemetry after reset", tokenType)
		}
	}
}
