package cli

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/tempo/pkg/client"
)

func TestServeListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- serveListener(ctx, &out, ln, ServeOptions{HoursPerDay: 6, DayStartHour: 9, Location: time.UTC})
	}()

	c := client.NewClient("http://" + ln.Addr().String())
	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("expected status ok, got %q", health.Status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}

	for _, want := range []string{"Listening on http://" + ln.Addr().String(), "Shutting down..."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got %q", want, out.String())
		}
	}
}

func TestServeListener_InvalidDayStart(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	err = serveListener(context.Background(), &bytes.Buffer{}, ln, ServeOptions{DayStartHour: 24})
	if err == nil || !strings.Contains(err.Error(), "invalid --day-start") {
		t.Fatalf("expected day start error, got %v", err)
	}
}

func TestServe_BadAddr(t *testing.T) {
	err := Serve(context.Background(), &bytes.Buffer{}, ServeOptions{Addr: "not-an-address"})
	if err == nil || !strings.Contains(err.Error(), "failed to listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
