package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/astraios/auth-service/internal/pkg/log"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// UnaryLogging реализует логирование unary-вызовов с контекстным логгером.
//
// Поведение:
//   - Вытягивает x-request-id из входящего metadata, иначе генерирует UUID;
//   - Извлекает peer (IP:port клиента) и метод (FullMethod);
//   - Кладёт обогащённый *slog.Logger в context (pkg/log), чтобы он был
//     доступен глубже по стеку;
//   - После выполнения handler пишет одну строку уровня Info: msg="grpc",
//     code=<gRPC status>, dur=<время выполнения>.
//
// В лог попадают только метод/peer/request_id; учётные данные и токены
// сюда не доходят (см. pkg/redact в сервисном слое).
func UnaryLogging(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		// request_id: из metadata, иначе генерируется новый.
		var rid string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-request-id"); len(v) > 0 && v[0] != "" {
				rid = v[0]
			}
		}
		if rid == "" {
			rid = uuid.NewString()
		}

		// peer: IP:port или "-" если недоступно.
		peerStr := "-"
		if p, ok := peer.FromContext(ctx); ok && p != nil && p.Addr != nil {
			peerStr = p.Addr.String()
		}

		l := base.With(
			slog.String("request_id", rid),
			slog.String("method", info.FullMethod),
			slog.String("peer", peerStr),
		)
		ctx = log.Into(ctx, l)

		resp, err := handler(ctx, req)

		l.Info("grpc",
			slog.String("code", status.Code(err).String()),
			slog.Duration("dur", time.Since(start)),
		)

		return resp, err
	}
}
