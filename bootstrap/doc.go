// Package bootstrap runs a finite task inside the component lifecycle.
//
// It validates typed configuration, initializes the logger, starts registered
// components in order, runs the task with signal-based cancellation, and
// stops the components again in reverse order.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	_ = app.RegisterComponent(storage.NewComponent(cfg.Storage, &cfg.COS, app.Logger))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return check(ctx)
//	})
package bootstrap
