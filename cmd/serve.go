package main

import (
	"context"

	"github.com/desertthunder/comeback/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until ctx is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	router, shutdown := r.apiRouter(ctx)
	defer shutdown()

	return server.Serve(ctx, addr, router, r.logger)
}

// apiRouter wires the API with middleware. shutdown stops any audio the API started.
func (r *Runner) apiRouter(ctx context.Context) (*server.BasicRouter, func()) {
	tracker := r.tracker()
	calm := r.calmTimer()
	synth := r.synth()

	opts := server.APIOpts{
		Tracker:   tracker,
		History:   r.history(tracker),
		Calm:      calm,
		Synth:     synth,
		Logger:    r.logger,
		FrameRate: int(r.config.Calm.FrameRate),
		Now:       r.now,
	}
	if prefs := r.preferences(); prefs != nil {
		opts.Preferences = prefs
	}

	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.Logging(r.logger))
	server.NewAPI(ctx, opts).Register(router)

	return router, func() {
		calm.Stop()
		synth.Stop()
	}
}
