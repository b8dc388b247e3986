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

func (api *API) CreateInventory(c *gin.Context) {
	u := ParseIdentity(c)

	var item models.NewInventory
	if err := c.ShouldBindJSON(&item); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateInventory(item); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var id int64
	if err := api.Db.QueryRow(`
		INSERT INTO inventory (movie_id, upc, charge, modified_by, modified_on)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, item.MovieId, item.Upc, item.Charge, u.Id, time.Now()).Scan(&id); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create inventory item.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// GetAvailableInventory lists units with no open rental; availability is
// derived by the available_inventory view, not stored.
func (api *API) GetAvailableInventory(c *gin.Context) {
	rows, err := api.Db.Query(`SELECT id, title, full, movie_id, upc, charge, modified_on FROM available_inventory`)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve inventory.")
		return
	}

	defer rows.Close()

	items := []models.Inventory{}
	for rows.Next() {
		item, err := scanInventory(rows)
		if err != nil {
			log.Println(err)
			sendError(c, http.StatusBadRequest, "unable to retrieve inventory.")
			return
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve inventory.")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (api *API) GetInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "inventory id was not provided.")
		return
	}

	var item models.Inventory
	var modifiedOn sql.NullTime
	if err := api.Db.QueryRow(`
		SELECT id, title, full, movie_id, upc, charge, modified_on
		FROM all_inventory WHERE id = $1
	`, id).Scan(&item.Id, &item.Title, &item.Full, &item.MovieId, &item.Upc,
		&item.Charge, &modifiedOn); err != nil {
		if err == sql.ErrNoRows {
			sendError(c, http.StatusBadRequest, "inventory item not found.")
			return
		}
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve inventory item.")
		return
	}

	if modifiedOn.Valid {
		item.ModifiedOn = modifiedOn.Time.Format("01/02/2006 03:04 PM")
	}

	c.JSON(http.StatusOK, item)
}

func (api *API) DeleteInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "inventory id was not provided.")
		return
	}

	tag, err := api.Db.Exec(`DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to remove inventory item.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "inventory item not found.")
		return
	}

	sendMessage(c, "inventory item removed.")
}

func scanInventory(rows *sql.Rows) (item models.Inventory, err error) {
	var modifiedOn sql.NullTime
	err = rows.Scan(&item.Id, &item.Title, &item.Full, &item.MovieId, &item.Upc, &item.Charge, &modifiedOn)
	if modifiedOn.Valid {
		item.ModifiedOn = modifiedOn.Time.Format("01/02/2006 03:04 PM")
	}
	return
}

func validateInventory(item models.NewInventory) error {
	if item.MovieId == 0 {
		return errors.New("missing-movie-id")
	}

	if item.Upc == "" {
		return errors.New("missing-upc")
	}

	return nil
}
