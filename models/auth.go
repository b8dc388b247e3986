package models

type Creds struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	Id    int64  `json:"id"`
	First string `json:"first"`
	Last  string `json:"last"`
}

type AuthResponse struct {
	Info  UserInfo `json:"info"`
	Token string   `json:"token"`
}

// Identity is the decoded token payload the auth middleware attaches to the
// request context. Handlers read it once and pass it down explicitly.
type Identity struct {
	Id   int64  `json:"id"`
	Role string `json:"role"`
}

type PasswordReset struct {
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type Role string

const (
	Admin        Role = "admin"
	EmployeeRole Role = "employee"
)
