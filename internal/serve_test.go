package internal

import (
	"context"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func quietLogger() *Logger {
	return NewLogger(LogLevelError).WithOutput(log.New(io.Discard, "", 0))
}

func TestRunServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- RunServer(ctx, srv, time.Second, quietLogger()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServerListenError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1"}
	err := RunServer(context.Background(), srv, time.Second, quietLogger())
	assert.Error(t, err)
}
