// Package reqctx holds request-scoped values shared by the HTTP layer,
// the authorization checks and logging.
//
// Setting values (typically in middleware):
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{RequestID: rid})
//	ctx = reqctx.WithClaims(ctx, claims)
//
// Getting values:
//
//	claims := reqctx.ClaimsFromContext(ctx)
//	rid := reqctx.RequestIDFromContext(ctx)
//	traceID := reqctx.TraceIDFromContext(ctx)
//
// RequestMeta is always set by HTTP middleware. Claims are set only for
// authenticated requests.
package reqctx
