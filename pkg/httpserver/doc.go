// Package httpserver runs an http.Handler until its context is cancelled and
// then shuts it down gracefully, running stop hooks such as closing the
// form store.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(
//		httpserver.WithAddr(cfg.HTTPAddr),
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(context.Context) error { return client.Close() }),
//	)
//	if err := srv.Run(ctx, h.Routes()); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
