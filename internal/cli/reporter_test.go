package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(level Level, fn func(*Reporter)) (out, errOut string) {
	var stdout, stderr bytes.Buffer
	reporter := NewReporter(level)
	reporter.SetOutput(&stdout, &stderr)
	fn(reporter)
	return stdout.String(), stderr.String()
}

func TestReporter_NormalLevel(t *testing.T) {
	out, errOut := capture(LevelNormal, func(r *Reporter) {
		r.Section("Scanning")
		r.Info("found %d files", 3)
		r.Success("done")
		r.Warn("odd but fine")
		r.List("item")
		r.Debug("hidden at normal level")
		r.Error("broken")
	})

	assert.Contains(t, out, "=== Scanning ===")
	assert.Contains(t, out, "found 3 files")
	assert.Contains(t, out, "✓ done")
	assert.Contains(t, out, "! odd but fine")
	assert.Contains(t, out, "  - item")
	assert.NotContains(t, out, "hidden at normal level")
	assert.Contains(t, errOut, "✗ broken")
}

func TestReporter_QuietLevel(t *testing.T) {
	out, errOut := capture(LevelQuiet, func(r *Reporter) {
		r.Section("Scanning")
		r.Info("info")
		r.Success("done")
		r.Warn("warn")
		r.Error("broken")
	})

	assert.Empty(t, out, "quiet suppresses everything but errors")
	assert.Contains(t, errOut, "broken")
}

func TestReporter_VerboseLevel(t *testing.T) {
	out, _ := capture(LevelVerbose, func(r *Reporter) {
		r.Debug("shown when verbose")
	})

	assert.Contains(t, out, "shown when verbose")
}
