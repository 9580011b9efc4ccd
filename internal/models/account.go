package models

// Account — данные пользователя, полученные от user-service.
// auth-service не хранит учётные записи сам; это проекция RPC-ответов.
type Account struct {
	UserID   string
	Username string
	Roles    []string
}
