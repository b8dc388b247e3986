package models

type NewInventory struct {
	MovieId int64   `json:"movie_id"`
	Upc     string  `json:"upc"`
	Charge  float64 `json:"charge"`
}

type Inventory struct {
	Id         int64   `json:"id"`
	Title      string  `json:"title"`
	Full       string  `json:"full"`
	MovieId    int64   `json:"movie_id"`
	Upc        string  `json:"upc"`
	Charge     float64 `json:"charge"`
	ModifiedOn string  `json:"modified_on"`
}
