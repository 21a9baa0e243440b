package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServe_ShutdownOrder(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := New(handler, Options{ShutdownTimeout: 2 * time.Second}, testLogger())

	var order []string
	srv.OnShutdown("database", func(context.Context) error {
		order = append(order, "database")
		return nil
	})
	srv.OnShutdown("cache", func(context.Context) error {
		order = append(order, "cache")
		return nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	if len(order) != 2 || order[0] != "cache" || order[1] != "database" {
		t.Fatalf("shutdown order = %v, want [cache database]", order)
	}
}

func TestServe_ShutdownErrorsJoined(t *testing.T) {
	t.Parallel()

	srv := New(http.NotFoundHandler(), Options{ShutdownTimeout: time.Second}, testLogger())
	errClose := errors.New("close failed")
	srv.OnShutdown("cache", func(context.Context) error { return errClose })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.Serve(ctx, ln); !errors.Is(err, errClose) {
		t.Fatalf("Serve error = %v, want %v", err, errClose)
	}
}

func TestNew_Addr(t *testing.T) {
	t.Parallel()

	srv := New(http.NotFoundHandler(), Options{Port: 9090}, nil)
	if srv.Addr() != ":9090" {
		t.Fatalf("Addr = %q", srv.Addr())
	}
}
