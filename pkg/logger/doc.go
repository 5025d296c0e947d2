// Package logger builds *slog.Logger values for the billing services.
//
// New takes functional options. WithEnvironment picks the level and format for
// development, staging or production and tags records with the service name.
// ContextExtractor callbacks copy request-scoped values such as the request
// ID and checkout session ID onto every record logged with a context.
//
// Attribute helpers in attr.go (SubscriptionID, TransactionID, Amount, Plan,
// PromoCode and friends) keep key names consistent across packages. The
// identifier helpers return an empty Attr for empty strings, which slog drops.
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "billingd"),
//	    logger.WithContextExtractors(logger.SessionExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	ctx := logger.WithSessionID(ctx, "sess-123")
//	log.InfoContext(ctx, "payment succeeded",
//	    logger.SubscriptionID(sub.ID),
//	    logger.Amount(sub.Amount),
//	)
//
// Error and Errors return an empty Attr for nil errors, so
// log.Info("done", logger.Error(err)) needs no nil check.
package logger
