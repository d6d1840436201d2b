package account

// Role classifies an account. Guest is declared for forward compatibility but
// no current flow produces it.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleGuest Role = "GUEST"
)

type Account struct {
	Username         string `json:"username"`
	Role             Role   `json:"role"`
	IsBanned         bool   `json:"isBanned"`
	RegistrationDate string `json:"registrationDate"`
	// SessionLimitMinutes overrides the global default allowance when set.
	SessionLimitMinutes *int `json:"sessionLimitMinutes,omitempty"`
}
