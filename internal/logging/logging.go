package logging

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
)

type keyType int

const key = keyType(0)

// logCtx содержит контекстную информацию для логирования.
// Тег log задаёт имя атрибута в записи, нулевые поля не выводятся.
type logCtx struct {
	RequestID         string `log:"request_id"`
	Status            int    `log:"status"`
	RequestDuration   string `log:"duration"`
	Method            string `log:"method"`
	Path              string `log:"path"`
	ParticipantsCount int    `log:"participants_count"`
	Seed              int64  `log:"seed"`
	Attempts          int    `log:"attempts"`
	Fallback          bool   `log:"fallback"`
}

// LoggerImpl оборачивает slog.Handler для добавления контекстной информации.
type LoggerImpl struct {
	next slog.Handler
}

func NewLoggerImpl(next slog.Handler) *LoggerImpl {
	return &LoggerImpl{next: next}
}

// Enabled проверяет, включён ли указанный уровень логирования.
func (h *LoggerImpl) Enabled(ctx context.Context, rec slog.Level) bool {
	return h.next.Enabled(ctx, rec)
}

// Handle обрабатывает запись лога, добавляя контекстную информацию и место вызова.
func (h *LoggerImpl) Handle(ctx context.Context, rec slog.Record) error {
	if c, ok := ctx.Value(key).(logCtx); ok {
		rec.AddAttrs(c.attrs()...)
	}

	if rec.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{rec.PC})
		f, _ := fs.Next()
		rec.Add("source", fmt.Sprintf("%s:%d", f.File, f.Line))
	}

	return h.next.Handle(ctx, rec)
}

// WithAttrs добавляет атрибуты к следующему обработчику.
func (h *LoggerImpl) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LoggerImpl{next: h.next.WithAttrs(attrs)}
}

// WithGroup добавляет группу к следующему обработчику.
func (h *LoggerImpl) WithGroup(name string) slog.Handler {
	return &LoggerImpl{next: h.next.WithGroup(name)}
}

func (c logCtx) attrs() []slog.Attr {
	v := reflect.ValueOf(c)
	t := v.Type()

	attrs := make([]slog.Attr, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.IsZero() {
			continue
		}
		attrs = append(attrs, slog.Any(t.Field(i).Tag.Get("log"), field.Interface()))
	}
	return attrs
}
