package domain

// UserRole represents the role of an authenticated user
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User represents a registered user of the marketplace
// Создание и аутентификация пользователей - зона ответственности auth-провайдера,
// сервис только читает данные для денормализации ответов
type User struct {
	ID       int64
	Username string
	Email    string
	Role     UserRole
}

// IsAdmin returns true if the user holds the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Principal is the authenticated actor making a request,
// supplied by the auth provider and trusted without re-verification
type Principal struct {
	ID   int64
	Role UserRole
}

// IsAdmin returns true if the principal holds the administrator role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessBooking единая проверка прав доступа к бронированию:
// владелец или администратор
func (p Principal) CanAccessBooking(b *Booking) bool {
	return p.IsAdmin() || b.UserID == p.ID
}
