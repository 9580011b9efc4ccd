// log — перенос request-scoped логгера через context.
// Интерсептор UnaryLogging кладёт сюда *slog.Logger, обогащённый
// request_id/method/peer; сервисный слой и загрузчик ключей достают его
// через From и пишут доменные события с теми же полями.
package log

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// Into возвращает контекст с привязанным логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From возвращает логгер запроса; вне запроса (и при nil-логгере
// в контексте) — slog.Default().
func From(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || l == nil {
		return slog.Default()
	}

	return l
}
