// Package logger provides a small factory over log/slog plus attribute
// helpers shared by the notification fabric.
//
// The factory supports format/level selection, static attributes and
// context extractors that inject request-scoped values (such as correlation
// ids) into every record via a decorating handler:
//
//	log := logger.New(
//	    logger.WithProduction("notifykit"),
//	    logger.WithContextValue("correlation_id", ctxkey.CorrelationID),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers keep keys consistent across packages:
//
//	log.LogAttrs(ctx, slog.LevelError, "event handler failed",
//	    logger.Event(name),
//	    logger.Handler(handlerName),
//	    logger.Error(err),
//	)
package logger
