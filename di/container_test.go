package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"es-server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewContainer_Dev(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Env = "dev"

	container, err := NewContainer(cfg, zap.NewNop())

	require.NoError(t, err)
	assert.True(t, container.PredictHQAPI.HasCredentials())

	handler := container.EventSpendHttpServer.Handler()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/v1/sessions", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestContainer_CloseWithoutRedis(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Env = "dev"
	container, err := NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, container.Close())
}
