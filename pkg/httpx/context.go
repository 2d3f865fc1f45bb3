package httpx

import "context"

type ctxKey string

const (
	CtxKeyIdentityID ctxKey = "identity_id"
	CtxKeyAnonymous  ctxKey = "anonymous"
)

// IdentityIDFromCtx returns the authenticated identity id, if any.
func IdentityIDFromCtx(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyIdentityID).(string)
	return v, ok
}

// AnonymousFromCtx reports whether the authenticated identity is a guest.
func AnonymousFromCtx(ctx context.Context) bool {
	v, _ := ctx.Value(CtxKeyAnonymous).(bool)
	return v
}
