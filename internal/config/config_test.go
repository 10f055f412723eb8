package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"statbook/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STATBOOK_ALPHA", "STATBOOK_LANG", "STATBOOK_PLOT_FORMAT", "PORT", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Analysis.Alpha)
	assert.Equal(t, language.English.String(), cfg.Analysis.Language.String())
	assert.Equal(t, "png", cfg.Plot.Format)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STATBOOK_ALPHA", "0.01")
	t.Setenv("STATBOOK_LANG", "pt-BR")
	t.Setenv("STATBOOK_PLOT_FORMAT", "SVG")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Analysis.Alpha)
	assert.Equal(t, "pt-BR", cfg.Analysis.Language.String())
	assert.Equal(t, "svg", cfg.Plot.Format)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_RejectsAlphaOutOfRange(t *testing.T) {
	t.Setenv("STATBOOK_ALPHA", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_RejectsUnknownPlotFormat(t *testing.T) {
	t.Setenv("STATBOOK_PLOT_FORMAT", "gif")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
