package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	cferrors "github.com/YuminosukeSato/cofprep/pkg/errors"
)

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(WrapByErrFmtHandler(base))

	err := cferrors.NewSchemaError("Clean", "topology")
	logger.Error("clean failed", ErrAttr(err))

	var record map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &record); jsonErr != nil {
		t.Fatalf("log output is not valid JSON: %v", jsonErr)
	}
	if _, ok := record[ErrAttrKey]; !ok {
		t.Errorf("expected %q attribute in log record", ErrAttrKey)
	}
	if _, ok := record[StacktraceAttrKey]; !ok {
		t.Errorf("expected %q attribute extracted from cockroachdb error", StacktraceAttrKey)
	}
}

func TestToLogLevel(t *testing.T) {
	if ToLogLevel("debug") != slog.LevelDebug {
		t.Errorf("debug level mismatch")
	}
	if ToLogLevel("error") != slog.LevelError {
		t.Errorf("error level mismatch")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unknown level")
		}
	}()
	ToLogLevel("verbose")
}
