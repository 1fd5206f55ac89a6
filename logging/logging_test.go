package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	buffer := bytes.NewBuffer(nil)

	logger, err := New("debug", "json", buffer)
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug().Int("chunk", 3).Msg("matched chunk")

	var line map[string]interface{}
	if err := json.Unmarshal(buffer.Bytes(), &line); err != nil {
		t.Fatalf("Output was not json: %v (%s)", err, buffer.String())
	}

	if line["message"] != "matched chunk" || line["chunk"] != float64(3) || line["level"] != "debug" {
		t.Errorf("Unexpected line %v", line)
	}

	if _, ok := line["time"]; !ok {
		t.Error("Missing timestamp")
	}
}

func TestLevelFilters(t *testing.T) {
	buffer := bytes.NewBuffer(nil)

	logger, err := New("warn", "json", buffer)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info().Msg("hidden")

	if buffer.Len() != 0 {
		t.Errorf("Info should not be logged at warn: %s", buffer.String())
	}
}

func TestConsoleOutput(t *testing.T) {
	buffer := bytes.NewBuffer(nil)

	logger, err := New("info", "console", buffer)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info().Str("file", "a.txt").Msg("diff complete")

	if !strings.Contains(buffer.String(), "diff complete") || !strings.Contains(buffer.String(), "a.txt") {
		t.Errorf("Unexpected output %q", buffer.String())
	}
}

func TestInvalidSettings(t *testing.T) {
	if _, err := New("loud", "json", nil); err == nil {
		t.Error("Expected an error for an unknown level")
	}

	if _, err := New("info", "xml", nil); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
