package handlers

import (
	"LoanKeeper/internal/middleware"
	"LoanKeeper/internal/model"
	"LoanKeeper/internal/service"
	"net/http"
)

// requireUser — шлюз авторизации перед любым доступом к данным:
// нет валидной сессии — 401; сессия есть, но пользователь исчез — 404
// (различие намеренное). Дальше все выборки фильтруются по владельцу
// в репозиториях, этот фильтр не обходится никаким путём в коде.
func requireUser(w http.ResponseWriter, r *http.Request, users *service.UserService) (*model.User, bool) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return nil, false
	}
	user, err := users.GetByID(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return user, true
}
