package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctxWithLogger := withLogger(ctx, logger)

	retrieved := loggerFromContext(ctxWithLogger)
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	ctx := context.Background()

	// Without logger in context, should return default
	logger := loggerFromContext(ctx)
	if logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestRequestLoggerAttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	srv := New(nil, &stubSource{}, WithLogger(log.New(&buf)))

	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = loggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	srv.requestLogger(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pivot", nil))

	if !sawLogger {
		t.Error("handler should see a request-scoped logger")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}

	line := buf.String()
	if !strings.Contains(line, "request") || !strings.Contains(line, "/api/pivot") {
		t.Errorf("log line = %q, want method and path", line)
	}
	if !strings.Contains(line, "204") {
		t.Errorf("log line = %q, want wrapped status code", line)
	}
}
