package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Info(CatTree, "moved node", "id", 3, "parent", 1)

	got := buf.String()
	if !strings.Contains(got, "[INFO] [tree] moved node id=3 parent=1") {
		t.Errorf("unexpected entry: %q", got)
	}
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Warn(CatDrag, "orphan", "key")

	if !strings.Contains(buf.String(), "key=<missing>") {
		t.Errorf("expected orphan key marker, got %q", buf.String())
	}
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetMinLevel(LevelWarn)
	Debug(CatSearch, "hidden")
	Error(CatSearch, "shown")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Error("debug entry should be filtered")
	}
	if !strings.Contains(got, "shown") {
		t.Error("error entry should be written")
	}
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetEnabled(false)
	Info(CatUI, "nothing")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	ErrorErr(CatConfig, "load failed", errors.New("boom"), "path", "/tmp/x")

	if !strings.Contains(buf.String(), "path=/tmp/x error=boom") {
		t.Errorf("unexpected entry: %q", buf.String())
	}
}

func TestLog_NoLoggerIsSilent(t *testing.T) {
	SetOutput(nil)
	// Must not panic without a destination.
	Debug(CatTree, "dropped")
}
