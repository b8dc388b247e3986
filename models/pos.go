package models

type PaymentInfo struct {
	RentalId      int64   `json:"rental_id"`
	PaymentType   string  `json:"payment_type"`
	PaymentAmount float64 `json:"payment_amount"`
	CardEnding    string  `json:"card_ending"`
}

// RentalFee is one row of the rental_fee_details view. The fee formula lives
// in the store; zero-fee rows are filtered out before they reach clients.
type RentalFee struct {
	RentalId   int64   `json:"rental_id"`
	CustomerId int64   `json:"customer_id"`
	Titles     string  `json:"titles"`
	Fee        float64 `json:"fee"`
	IsReturned bool    `json:"is_returned"`
}
