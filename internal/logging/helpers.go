package logging

import "context"

func update(ctx context.Context, fn func(*logCtx)) context.Context {
	c, _ := ctx.Value(key).(logCtx)
	fn(&c)
	return context.WithValue(ctx, key, c)
}

// WithLogRequestID добавляет request ID в контекст.
func WithLogRequestID(ctx context.Context, requestID string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestID = requestID })
}

// WithLogRequestPath добавляет путь запроса в контекст.
func WithLogRequestPath(ctx context.Context, path string) context.Context {
	return update(ctx, func(c *logCtx) { c.Path = path })
}

// WithLogRequestMethod добавляет метод запроса в контекст.
func WithLogRequestMethod(ctx context.Context, method string) context.Context {
	return update(ctx, func(c *logCtx) { c.Method = method })
}

// WithLogRequestStatus добавляет статус ответа в контекст.
func WithLogRequestStatus(ctx context.Context, status int) context.Context {
	return update(ctx, func(c *logCtx) { c.Status = status })
}

// WithLogRequestDuration добавляет длительность запроса в контекст.
func WithLogRequestDuration(ctx context.Context, duration string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestDuration = duration })
}

// WithLogParticipantsCount добавляет количество участников жеребьёвки.
func WithLogParticipantsCount(ctx context.Context, cnt int) context.Context {
	return update(ctx, func(c *logCtx) { c.ParticipantsCount = cnt })
}

// WithLogSeed добавляет seed, с которым проводилась жеребьёвка.
func WithLogSeed(ctx context.Context, seed int64) context.Context {
	return update(ctx, func(c *logCtx) { c.Seed = seed })
}

// WithLogAttempts добавляет число попыток перемешивания и признак запасного алгоритма.
func WithLogAttempts(ctx context.Context, attempts int, fallback bool) context.Context {
	return update(ctx, func(c *logCtx) {
		c.Attempts = attempts
		c.Fallback = fallback
	})
}
