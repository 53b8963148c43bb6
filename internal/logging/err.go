package logging

import (
	"context"
	"errors"
)

// errorWithLogCtx переносит контекст логирования вместе с ошибкой через границу слоёв.
type errorWithLogCtx struct {
	next error
	ctx  logCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.next.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.next
}

// WrapError запоминает в ошибке поля логирования из ctx.
// nil остаётся nil, повторная обёртка заменяет сохранённый контекст.
func WrapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	c, _ := ctx.Value(key).(logCtx)

	if e, ok := err.(*errorWithLogCtx); ok {
		return &errorWithLogCtx{next: e.next, ctx: c}
	}
	return &errorWithLogCtx{next: err, ctx: c}
}

// ErrorCtx возвращает ctx с полями логирования, сохранёнными в err.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) {
		return context.WithValue(ctx, key, e.ctx)
	}
	return ctx
}
