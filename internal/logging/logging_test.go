package logging_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/idelchi/gosym/internal/logging"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")

	log := logging.New(&buf, true, "v1.2.3")
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())

	log.WithField("file", "a.txt").Debug("encrypted")
	assert.Contains(t, buf.String(), "file=a.txt")
	assert.Contains(t, buf.String(), "version=v1.2.3")

	quiet := logging.New(&buf, false, "")
	assert.Equal(t, logrus.ErrorLevel, quiet.Logger.GetLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, logging.New(&buf, true, "").Logger.GetLevel())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logging.Discard()
	log.Error("dropped")
	assert.NotNil(t, log.Logger)
}
