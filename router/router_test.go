// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/testutil"
)

func newTestRouter(t *testing.T, svc *testutil.FakeService, in string) (*Router, *bytes.Buffer) {
	t.Helper()

	cfg := cliparse.Config{
		ServerURL:    svc.URL(),
		ProjectID:    testutil.TestProjectID,
		Strategy:     cliparse.StrategyRemote,
		Timeout:      5 * time.Second,
		AdminSecret:  testutil.TestAdminSecret,
		AdminToken:   testutil.TestAdminToken,
		DatabaseType: "sqlite",
		DatabaseURL:  t.TempDir() + "/export.db",
	}
	var out bytes.Buffer
	return NewRouter(svc.Client(cfg.ProjectID), cfg, zap.NewNop(), strings.NewReader(in), &out), &out
}

func TestHelpListsCommands(t *testing.T) {
	svc := testutil.NewFakeService(t)
	r, out := newTestRouter(t, svc, "")

	if err := r.Dispatch(context.Background(), "help", nil); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, name := range []string{"rate", "samples", "ratings", "my-ratings", "results", "export", "new-project", "add-sample <text1> <text2>", "help"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Expected help to mention %q, got:\n%s", name, out.String())
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService(t)
	r, _ := newTestRouter(t, svc, "")

	err := r.Dispatch(context.Background(), "frobnicate", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("Expected ErrUnknownCommand, got %v", err)
	}
	if len(svc.Requests()) != 0 {
		t.Errorf("Expected no service calls, got %d", len(svc.Requests()))
	}
}

func TestRouteExistence(t *testing.T) {
	svc := testutil.NewFakeService(t, models.Sample{ID: 1, Text1: "x", Text2: "y"})
	r, _ := newTestRouter(t, svc, "q\n")

	commands := []struct {
		name string
		args []string
	}{
		{"rate", nil},
		{"samples", nil},
		{"ratings", nil},
		{"my-ratings", nil},
		{"results", nil},
		{"export", nil},
		{"new-project", nil},
		{"add-sample", []string{"a", "b"}},
	}

	for _, c := range commands {
		t.Run(c.name, func(t *testing.T) {
			if err := r.Dispatch(context.Background(), c.name, c.args); err != nil {
				t.Errorf("Command %s failed: %v", c.name, err)
			}
		})
	}
}

func TestDispatchLogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := New(zap.New(core))

	r.Handle("ok", "", "", func(ctx context.Context, args []string) error { return nil })
	r.Handle("bad", "", "", func(ctx context.Context, args []string) error { return errors.New("boom") })

	if err := r.Dispatch(context.Background(), "ok", nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := r.Dispatch(context.Background(), "bad", nil); err == nil || err.Error() != "boom" {
		t.Fatalf("Expected boom, got %v", err)
	}

	if n := logs.FilterMessage("command completed").Len(); n != 1 {
		t.Errorf("Expected 1 completed entry, got %d", n)
	}
	failed := logs.FilterMessage("command failed").All()
	if len(failed) != 1 || failed[0].ContextMap()["command"] != "bad" {
		t.Errorf("Expected 1 failed entry for bad, got %v", failed)
	}
}

func TestHandleReplacesKeepsOrder(t *testing.T) {
	r := New(zap.NewNop())
	calls := 0
	r.Handle("a", "", "first", func(ctx context.Context, args []string) error { return nil })
	r.Handle("b", "", "", func(ctx context.Context, args []string) error { return nil })
	r.Handle("a", "", "second", func(ctx context.Context, args []string) error { calls++; return nil })

	if err := r.Dispatch(context.Background(), "a", nil); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("Expected replacement handler to run")
	}

	var out bytes.Buffer
	r.Usage(&out)
	if strings.Index(out.String(), "second") > strings.Index(out.String(), "  b") {
		t.Errorf("Expected a before b in usage, got:\n%s", out.String())
	}
}
