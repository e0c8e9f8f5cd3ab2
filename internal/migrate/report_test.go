package migrate

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/lherron/joplin2fnx/internal/domain"
)

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	sink := LogSink{Entry: logrus.NewEntry(logger)}
	sink.Merged(KindNote, domain.Path{{Title: "Work"}}, "Plan", true)
	sink.Skipped(Skipped{Kind: KindNote, ID: "10", Title: "Plan", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "msg=merged")
	assert.Contains(t, out, "path=Work")
	assert.Contains(t, out, "level=warning msg=skipped")
	assert.Contains(t, out, "error=boom")
}
