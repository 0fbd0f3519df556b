// Package logger builds slog loggers with the platform's conventions:
// JSON in production, text in development, plus a handler decorator that
// pulls request-scoped attributes (request id, tenant slug) out of context
// on every log call.
//
//	log := logger.New(
//	    logger.WithProduction("omnex-core"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
package logger
