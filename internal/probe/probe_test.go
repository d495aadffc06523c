package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hanthor/bridgecheck/internal/errs"
)

func TestCheck_AllReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := Check(context.Background(), server.Client(), map[string]string{
		"admin":  server.URL,
		"client": server.URL + "/client",
	}, 2*time.Second)
	if err != nil {
		t.Fatalf("expected reachable endpoints, got: %v", err)
	}
}

func TestCheck_NonSuccessStatusStillReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	err := Check(context.Background(), server.Client(), map[string]string{"admin": server.URL}, 2*time.Second)
	if err != nil {
		t.Fatalf("a 404 still proves the endpoint answers, got: %v", err)
	}
}

func TestCheck_UnreachableFailsFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	start := time.Now()
	err := Check(context.Background(), nil, map[string]string{"admin": server.URL}, 2*time.Second)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error for closed endpoint")
	}
	if errs.CodeOf(err) != errs.Unreachable {
		t.Errorf("expected unreachable code, got %s", errs.CodeOf(err))
	}
	if elapsed > 5*time.Second {
		t.Errorf("check took %v, expected fast failure", elapsed)
	}
}

func TestCheck_RespectsContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := Check(ctx, server.Client(), map[string]string{"admin": server.URL}, 30*time.Second)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got: %v", err)
	}
}

func TestAdminPing_UsesPingEndpoint(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := AdminPing(context.Background(), server.Client(), server.URL+"/", 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != AdminPingPath {
		t.Errorf("expected ping path %s, got %s", AdminPingPath, gotPath)
	}
}

func TestAdminPing_ServerErrorIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := AdminPing(context.Background(), server.Client(), server.URL, 2*time.Second)
	if err == nil {
		t.Fatal("expected error for 502 ping")
	}
	if errs.CodeOf(err) != errs.Unreachable {
		t.Errorf("expected unreachable code, got %s", errs.CodeOf(err))
	}
}
