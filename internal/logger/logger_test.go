package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := New(&out, &errOut)

	l.Infof("estimated %s", "ceviche")
	l.Errorf("engine failed: %v", "quota")
	l.Debugf("hidden")

	assert.Contains(t, out.String(), "INFO: ")
	assert.Contains(t, out.String(), "estimated ceviche")
	assert.Contains(t, out.String(), "logger_test.go")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, errOut.String(), "ERROR: ")
	assert.Contains(t, errOut.String(), "engine failed: quota")

	l.SetDebug(true)
	l.Debugf("visible %d", 1)
	assert.Contains(t, out.String(), "DEBUG visible 1")
}
