package models

type Movie struct {
	Id       int64   `json:"id"`
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Genres   string  `json:"genres"`
	Year     string  `json:"year"`
	Minutes  int     `json:"minutes"`
	Language string  `json:"language"`
	Actors   string  `json:"actors"`
	Director string  `json:"director"`
	Imdb     string  `json:"imdb"`
	Rating   float64 `json:"rating,omitempty"`
}
