package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/fobstore/component"
	"github.com/kbukum/fobstore/config"
	"github.com/kbukum/fobstore/logger"
)

type testConfig struct {
	config.ServiceConfig `mapstructure:",squash"`
	Extra                string
}

func newTestConfig() *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: "fobcheck"}}
}

type recordingComponent struct {
	name     string
	events   *[]string
	startErr error
	stopErr  error
	status   component.HealthStatus
}

func (c *recordingComponent) Name() string { return c.name }

func (c *recordingComponent) Start(ctx context.Context) error {
	*c.events = append(*c.events, "start:"+c.name)
	return c.startErr
}

func (c *recordingComponent) Stop(ctx context.Context) error {
	*c.events = append(*c.events, "stop:"+c.name)
	return c.stopErr
}

func (c *recordingComponent) Health(ctx context.Context) component.Health {
	status := c.status
	if status == "" {
		status = component.StatusHealthy
	}
	return component.Health{Name: c.name, Status: status}
}

func (c *recordingComponent) Describe() component.Description {
	return component.Description{Name: c.name, Type: "storage", Details: "mode=FILE"}
}

func newTestApp(t *testing.T) *App[*testConfig] {
	t.Helper()
	app, err := NewApp(newTestConfig(), WithLogger(logger.Nop()), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app
}

func TestNewAppAppliesDefaults(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "fobcheck" {
		t.Errorf("Name = %q", app.Name)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", app.Cfg.Environment)
	}
	if app.Components == nil || app.Summary == nil {
		t.Fatal("registry and summary should be set")
	}
	if app.gracefulTimeout != time.Second {
		t.Errorf("gracefulTimeout = %v", app.gracefulTimeout)
	}
}

func TestNewAppValidationError(t *testing.T) {
	tests := []struct {
		name string
		cfg  *testConfig
	}{
		{"missing name", &testConfig{}},
		{"bad environment", &testConfig{ServiceConfig: config.ServiceConfig{Name: "x", Environment: "qa"}}},
		{"bad log level", &testConfig{ServiceConfig: config.ServiceConfig{
			Name:    "x",
			Logging: logger.Config{Level: "loud"},
		}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewApp(tc.cfg, WithLogger(logger.Nop()))
			if err == nil || !strings.Contains(err.Error(), "config validation") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRunTaskOrder(t *testing.T) {
	var events []string
	app := newTestApp(t)
	if err := app.RegisterComponent(&recordingComponent{name: "storage", events: &events}); err != nil {
		t.Fatalf("RegisterComponent() error = %v", err)
	}
	app.OnStart(func(ctx context.Context) error {
		events = append(events, "onStart")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		events = append(events, "onStop")
		return nil
	})

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		events = append(events, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask() error = %v", err)
	}

	want := "start:storage,onStart,task,onStop,stop:storage"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if app.Summary.StartupDuration() <= 0 {
		t.Error("startup duration should be recorded")
	}
}

func TestRunTaskErrorWins(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&recordingComponent{
		name:    "storage",
		events:  &events,
		stopErr: errors.New("stop failed"),
	})

	taskErr := errors.New("fidelity check failed")
	err := app.RunTask(context.Background(), func(ctx context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Fatalf("RunTask() error = %v, want task error", err)
	}
}

func TestRunTaskStopError(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&recordingComponent{
		name:    "storage",
		events:  &events,
		stopErr: errors.New("stop failed"),
	})

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "stop failed") {
		t.Fatalf("RunTask() error = %v, want stop error", err)
	}
}

func TestRunTaskStartFailure(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&recordingComponent{
		name:     "storage",
		events:   &events,
		startErr: errors.New("bad mode"),
	})

	ran := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "initialization failed") {
		t.Fatalf("RunTask() error = %v", err)
	}
	if ran {
		t.Error("task should not run when a component fails to start")
	}
}

func TestRunTaskOnStartFailureStopsComponents(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&recordingComponent{name: "storage", events: &events})
	app.OnStart(func(ctx context.Context) error { return errors.New("seed failed") })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		t.Error("task should not run")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Fatalf("RunTask() error = %v", err)
	}
	if got := strings.Join(events, ","); got != "start:storage,stop:storage" {
		t.Errorf("events = %s", got)
	}
}

func TestRunTaskCancelledContext(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&recordingComponent{name: "storage", events: &events})

	ctx, cancel := context.WithCancel(context.Background())
	err := app.RunTask(ctx, func(taskCtx context.Context) error {
		cancel()
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RunTask() error = %v, want context.Canceled", err)
	}
	if events[len(events)-1] != "stop:storage" {
		t.Errorf("components should stop after cancellation, events = %v", events)
	}
}

func TestReadyCheck(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&recordingComponent{name: "local", events: &events})
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Fatalf("ReadyCheck() error = %v", err)
	}

	_ = app.RegisterComponent(&recordingComponent{
		name:   "cos",
		events: &events,
		status: component.StatusDegraded,
	})
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cos=degraded") {
		t.Fatalf("ReadyCheck() error = %v", err)
	}
}

func TestRunHooksStopsAtFirstError(t *testing.T) {
	var ran []int
	hooks := []Hook{
		func(ctx context.Context) error { ran = append(ran, 0); return nil },
		func(ctx context.Context) error { ran = append(ran, 1); return errors.New("boom") },
		func(ctx context.Context) error { ran = append(ran, 2); return nil },
	}
	err := runHooks(context.Background(), hooks)
	if err == nil || !strings.Contains(err.Error(), "hook 1 failed") {
		t.Fatalf("runHooks() error = %v", err)
	}
	if len(ran) != 2 {
		t.Errorf("ran = %v, want first two hooks", ran)
	}
}

func TestSummary(t *testing.T) {
	s := NewSummary("fobcheck")
	s.SetStartupDuration(250 * time.Millisecond)
	if s.StartupDuration() != 250*time.Millisecond {
		t.Errorf("StartupDuration() = %v", s.StartupDuration())
	}

	var events []string
	reg := component.NewRegistry(logger.Nop())
	_ = reg.Register(&recordingComponent{name: "storage", events: &events})
	s.Display(context.Background(), reg, logger.Nop())
}
