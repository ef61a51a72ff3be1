package models

import "time"

type UserRole string // Роль пользователя на площадке

const (
	Buyer      UserRole = "Buyer"      // Пользователь заказывает услуги
	Provider   UserRole = "Provider"   // Пользователь выполняет услуги
	Advertiser UserRole = "Advertiser" // Пользователь размещает рекламу
)

// User представляет модель пользователя. Роли хранятся одним каноническим набором.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Roles     []UserRole `json:"roles"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UserRequest представляет структуру запроса для регистрации пользователя.
type UserRequest struct {
	Username string     `json:"username"`
	Roles    []UserRole `json:"roles"`
}

// RoleFlags - булево представление набора ролей для ответов API.
type RoleFlags struct {
	IsBuyer      bool `json:"isBuyer"`
	IsProvider   bool `json:"isProvider"`
	IsAdvertiser bool `json:"isAdvertiser"`
}

// UserResponse представляет пользователя вместе с производным булевым представлением ролей.
type UserResponse struct {
	User
	RoleFlags RoleFlags `json:"roleFlags"`
}

// HasRole проверяет, есть ли у пользователя указанная роль.
func (u User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ProjectRoleFlags выводит булево представление из набора ролей.
// Набор ролей остается единственным источником, флаги нигде не хранятся.
func ProjectRoleFlags(roles []UserRole) RoleFlags {
	var flags RoleFlags
	for _, r := range roles {
		switch r {
		case Buyer:
			flags.IsBuyer = true
		case Provider:
			flags.IsProvider = true
		case Advertiser:
			flags.IsAdvertiser = true
		}
	}
	return flags
}
