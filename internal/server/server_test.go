package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmcompass/compass/internal/config"
	"github.com/acmcompass/compass/internal/gitsync"
	"github.com/acmcompass/compass/internal/store"
)

func TestServer_ServesFrontend(t *testing.T) {
	frontend := t.TempDir()
	err := os.WriteFile(filepath.Join(frontend, "index.html"), []byte("<h1>compass</h1>"), 0o644)
	require.NoError(t, err)

	cfg := &config.Config{
		BaseDir:     t.TempDir(),
		FrontendDir: frontend,
	}
	h := New(cfg, nil).Handler()

	rec := doJSON(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "compass")

	// API routes still win over the static mount
	rec = doJSON(t, h, http.MethodGet, "/api/problems", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Join(errors.New("problem x"), store.ErrNotFound), http.StatusNotFound},
		{"remote not configured", gitsync.ErrRemoteNotConfigured, http.StatusBadRequest},
		{"tool failure", &gitsync.ToolError{Step: "push", ExitCode: 1}, http.StatusBadGateway},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromErr(tt.err))
		})
	}
}
