package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdidvp/reviewkit/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	var quiet, verbose bytes.Buffer

	logging.New(&quiet, false).Debug("hidden")
	logging.New(&quiet, false).Warn("shown", "file", "a.py")
	logging.New(&verbose, true).Debug("visible")

	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "level=WARN")
	assert.Contains(t, quiet.String(), "file=a.py")
	assert.Contains(t, verbose.String(), "level=DEBUG")
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, logging.OrDiscard(nil))

	var buf bytes.Buffer
	l := logging.New(&buf, false)
	assert.Same(t, l, logging.OrDiscard(l))
}
