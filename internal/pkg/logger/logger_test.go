package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "nil config", config: nil},
		{name: "default config", config: DefaultConfig()},
		{
			name:   "console format",
			config: &Config{Level: "debug", Format: "console", Output: OutputConsole},
		},
		{
			name: "file output",
			config: &Config{
				Level:  "info",
				Format: "json",
				Output: OutputFile,
				File:   FileConfig{Filename: filepath.Join(dir, "app.log"), MaxSize: 10, MaxAge: 7, MaxBackups: 3},
			},
		},
		{
			name: "both output",
			config: &Config{
				Level:  "warn",
				Format: "json",
				Output: OutputBoth,
				File:   FileConfig{Filename: filepath.Join(dir, "both.log"), MaxSize: 10, MaxAge: 7},
			},
		},
		{
			name:    "invalid level",
			config:  &Config{Level: "loud", Format: "json", Output: OutputConsole},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  &Config{Level: "info", Format: "xml", Output: OutputConsole},
			wantErr: true,
		},
		{
			name:    "invalid output",
			config:  &Config{Level: "info", Format: "json", Output: "syslog"},
			wantErr: true,
		},
		{
			name:    "file output without filename",
			config:  &Config{Level: "info", Format: "json", Output: OutputFile},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)
			l.Info("test message")
			_ = l.Sync()
		})
	}
}

func TestLogger_WithAndNamed(t *testing.T) {
	l, err := New(DefaultConfig())
	require.NoError(t, err)

	child := l.With(zap.String("key", "value"))
	assert.NotNil(t, child)
	assert.Same(t, l.Config(), child.Config())

	named := l.Named("search")
	assert.NotNil(t, named)
	assert.Same(t, l.Config(), named.Config())
}

func TestContext(t *testing.T) {
	l, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.NotNil(t, FromContext(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = ToContext(ctx, l)
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestGinLogger_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, err := New(DefaultConfig())
	require.NoError(t, err)

	var seen string
	router := gin.New()
	router.Use(GinLogger(l))
	router.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})
}
