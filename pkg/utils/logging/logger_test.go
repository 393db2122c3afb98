package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestParseLogLevel(t *testing.T) {
	gt.Equal(t, logging.ParseLogLevel("DEBUG"), slog.LevelDebug)
	gt.Equal(t, logging.ParseLogLevel("warning"), slog.LevelWarn)
	gt.Equal(t, logging.ParseLogLevel("error"), slog.LevelError)
	gt.Equal(t, logging.ParseLogLevel(""), slog.LevelInfo)
	gt.Equal(t, logging.ParseLogLevel("verbose"), slog.LevelInfo)
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("json")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatJSON)

	f, err = logging.ParseFormat("console")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatConsole)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}

func TestNewLoggerNonTerminalIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(slog.LevelInfo, &buf)
	logger.Info("hello", "region", "Popayán")
	gt.S(t, buf.String()).Contains(`"msg":"hello"`)
	gt.S(t, buf.String()).Contains(`"region":"Popayán"`)
}
