// httpapi — HTTP-поверхность discovery: /.well-known/jwks.json.
// Эндпоинт неаутентифицированный и всегда безопасен для публикации.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/astraios/auth-service/internal/tokens"
)

// JWKSPath — стандартный путь документа discovery.
const JWKSPath = "/.well-known/jwks.json"

// JWKSHandler отдаёт JSON-форму текущего JWK Set.
func JWKSHandler(codec *tokens.Codec, lg *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(codec.JWKS()); err != nil {
			lg.Error("jwks_encode_failed", slog.String("err", err.Error()))
		}
	}
}
