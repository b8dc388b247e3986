package models

type Customer struct {
	Id      int64  `json:"id"`
	First   string `json:"first"`
	Last    string `json:"last"`
	Full    string `json:"full,omitempty"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
}
