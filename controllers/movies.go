package controllers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"rentalapi/models"

	"github.com/gin-gonic/gin"
)

func (api *API) CreateMovie(c *gin.Context) {
	u := ParseIdentity(c)

	var movie models.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateMovie(movie); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var id int64
	if err := api.Db.QueryRow(`
		INSERT INTO movies (category, title, genres, year, minutes, language, actors, director, imdb, modified_by, modified_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id
	`, movie.Category, movie.Title, movie.Genres, movie.Year, movie.Minutes,
		movie.Language, movie.Actors, movie.Director, movie.Imdb, u.Id, time.Now()).Scan(&id); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create movie.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (api *API) GetMovies(c *gin.Context) {
	rows, err := api.Db.Query(`SELECT id, category, title, genres, year, minutes, language, actors, director, imdb, rating FROM all_movies`)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve movies.")
		return
	}

	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			log.Println(err)
			sendError(c, http.StatusBadRequest, "unable to retrieve movies.")
			return
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve movies.")
		return
	}

	c.JSON(http.StatusOK, movies)
}

func (api *API) GetMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "movie id was not provided.")
		return
	}

	var movie models.Movie
	var rating sql.NullFloat64
	if err := api.Db.QueryRow(`
		SELECT id, category, title, genres, year, minutes, language, actors, director, imdb, rating
		FROM all_movies WHERE id = $1
	`, id).Scan(&movie.Id, &movie.Category, &movie.Title, &movie.Genres, &movie.Year,
		&movie.Minutes, &movie.Language, &movie.Actors, &movie.Director, &movie.Imdb, &rating); err != nil {
		if err == sql.ErrNoRows {
			sendError(c, http.StatusBadRequest, "movie not found.")
			return
		}
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve movie.")
		return
	}

	movie.Rating = rating.Float64
	c.JSON(http.StatusOK, movie)
}

func (api *API) UpdateMovie(c *gin.Context) {
	u := ParseIdentity(c)

	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "movie id was not provided.")
		return
	}

	var movie models.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateMovie(movie); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := api.Db.Exec(`
		UPDATE movies SET category = $1, title = $2, genres = $3, year = $4, minutes = $5,
			language = $6, actors = $7, director = $8, imdb = $9, modified_by = $10, modified_on = $11
		WHERE id = $12
	`, movie.Category, movie.Title, movie.Genres, movie.Year, movie.Minutes,
		movie.Language, movie.Actors, movie.Director, movie.Imdb, u.Id, time.Now(), id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to update movie.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "movie not found.")
		return
	}

	movie.Id = id
	c.JSON(http.StatusOK, movie)
}

func (api *API) DeleteMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "movie id was not provided.")
		return
	}

	tag, err := api.Db.Exec(`DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to remove movie.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "movie not found.")
		return
	}

	sendMessage(c, "movie removed.")
}

func scanMovie(rows *sql.Rows) (movie models.Movie, err error) {
	var rating sql.NullFloat64
	err = rows.Scan(&movie.Id, &movie.Category, &movie.Title, &movie.Genres, &movie.Year,
		&movie.Minutes, &movie.Language, &movie.Actors, &movie.Director, &movie.Imdb, &rating)
	movie.Rating = rating.Float64
	return
}

func validateMovie(movie models.Movie) error {
	if movie.Title == "" {
		return errors.New("missing-title")
	}

	if movie.Category == "" {
		return errors.New("missing-category")
	}

	if movie.Year == "" {
		return errors.New("missing-year")
	}

	return nil
}
