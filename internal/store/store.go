// store описывает контракт хранилища refresh-привязок:
// отображение идентификатора пользователя на единственный действующий
// refresh-токен с TTL. Именно это отображение обеспечивает серверный
// отзыв и ротацию токенов.
package store

import (
	"context"
	"time"
)

// RefreshStore — минимальный контракт хранилища привязок.
// Инвариант: не более одной привязки на пользователя; конкурирующие
// записи разрешаются по принципу «последний победил».
type RefreshStore interface {
	// Put безусловно записывает привязку с указанным TTL,
	// заменяя предыдущую (ротация).
	Put(ctx context.Context, userID, token string, ttl time.Duration) error
	// Get возвращает привязанный токен и признак его наличия.
	// Отсутствие привязки — не ошибка.
	Get(ctx context.Context, userID string) (string, bool, error)
	// Del удаляет привязку (logout); удаление отсутствующего ключа
	// не считается ошибкой.
	Del(ctx context.Context, userID string) error
	// Close освобождает ресурсы клиента.
	Close() error
}
