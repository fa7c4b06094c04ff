package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestLogger_NewLogger(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		log := NewLogger("DEBUG", "testModule")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.DEBUG))
	})

	t.Run("invalid log level", func(t *testing.T) {
		log := NewLogger("INVALID", "testModule")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.INFO))
		assert.False(t, log.IsEnabledFor(logging.DEBUG))
	})
}

func TestLogger_NewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "warning", "bufModule")

	log.Info("hidden")
	log.Warning("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_ParseTime(t *testing.T) {
	elapsed := 3661 * time.Second
	hours, minutes, seconds := ParseTime(elapsed)

	assert.Equal(t, uint32(1), hours)
	assert.Equal(t, uint32(1), minutes)
	assert.Equal(t, uint32(1), seconds)
}
