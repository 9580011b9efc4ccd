// redact — маскирование чувствительных значений перед попаданием в логи.
package redact

// Username оставляет первые два символа логина, остальное маскирует.
func Username(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}

	return string(r[:2]) + "***"
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
