package log

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogNotInitialized(t *testing.T) {
	Info("Test log.Info", " value is ", 10)
	Infof("Test log.Infof %d", 10)
	Infow("Test log.Infow", "value", 10)
	Debugf("Test log.Debugf %d", 10)
	Error("Test log.Error", " value is ", 10)
	Errorf("Test log.Errorf %d", 10)
	Errorw("Test log.Errorw", "value", 10)
	Warnf("Test log.Warnf %d", 10)
}

func TestLog(t *testing.T) {
	cfg := Config{
		Environment: EnvironmentDevelopment,
		Level:       "debug",
		Outputs:     []string{"stderr"}, // []string{"stdout", "test.log"}
	}

	Init(cfg)

	Info("Test log.Info", " value is ", 10)
	Infof("Test log.Infof %d", 10)
	Infow("Test log.Infow", "value", 10)
	Debugf("Test log.Debugf %d", 10)
	Error("Test log.Error", " value is ", 10, errors.New("foo"))
	Errorf("Test log.Errorf %d", 10)
	Errorw("Test log.Errorw", "err", errors.New("foo"))
	Warnf("Test log.Warnf %d", 10)

	logger := WithFields("module", "test")
	logger.Infof("Test logger.Infof %d", 10)
	require.NotNil(t, logger.GetSugaredLogger())
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, _, err := NewLogger(Config{
		Environment: EnvironmentProduction,
		Level:       "verbose",
	})
	require.Error(t, err)
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spvproof.log")
	logger, level, err := NewLogger(Config{
		Environment: EnvironmentProduction,
		Level:       "warn",
		Outputs:     []string{path},
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.Equal(t, "warn", level.String())
	require.FileExists(t, path)
}
