package models

import "time"

// NewRental is the check-out payload. InventoryIds is a comma-separated list
// of inventory item ids, matching the point-of-sale client's wire format.
type NewRental struct {
	CustomerId   int64  `json:"customer_id"`
	InventoryIds string `json:"inventory_ids"`
}

// ReturnInfo carries MovieIds and Ratings as comma-separated lists of equal
// length; each pair becomes one rating row attributed to CustomerId.
type ReturnInfo struct {
	Id         int64  `json:"id"`
	CustomerId int64  `json:"customer_id"`
	MovieIds   string `json:"movie_ids"`
	Ratings    string `json:"ratings"`
}

// Rental is one row of the all_rentals view.
type Rental struct {
	Id           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	CustomerId   int64     `json:"customer_id"`
	Titles       string    `json:"titles"`
	MovieIds     string    `json:"movie_ids"`
	InventoryIds string    `json:"inventory_ids"`
	RentedOn     time.Time `json:"rented_on"`
	DueDate      time.Time `json:"due_date"`
	Charge       float64   `json:"charge,omitempty"`
}
