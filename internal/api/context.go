package api

import "context"

// Admin identifies the authenticated back-office operator for a request.
type Admin struct {
	Email string
}

type ctxKey string

const ctxKeyAdmin ctxKey = "admin"

func WithAdmin(ctx context.Context, a *Admin) context.Context {
	return context.WithValue(ctx, ctxKeyAdmin, a)
}

func AdminFromContext(ctx context.Context) *Admin {
	v := ctx.Value(ctxKeyAdmin)
	if v == nil {
		return nil
	}
	a, _ := v.(*Admin)
	return a
}
