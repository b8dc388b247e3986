package models

type Employee struct {
	Id       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	First    string `json:"first"`
	Last     string `json:"last"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"`
}
