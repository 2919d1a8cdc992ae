// Package logger provides a context-aware wrapper around Go's slog package
// with functional options and attribute constructors shared by the
// validation engine, its stores and the HTTP trigger handler.
//
// New creates a *slog.Logger. The concrete handler (text or JSON) is wrapped
// with LogHandlerDecorator, which runs registered ContextExtractor callbacks
// on every record so request-scoped values such as a request id end up in
// the output without being passed around.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formserver"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "field validated",
//	    logger.FormID(id),
//	    logger.Field("email"),
//	    logger.Count(len(messages)),
//	)
//
// Attribute helpers keep key names consistent: Error, Component, Event,
// Field, Rule, FormID, Count and RequestID. Error and FormID return an empty
// attribute for nil input, so no nil check is needed at call sites.
package logger
