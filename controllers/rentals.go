package controllers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"rentalapi/models"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

var dateFormat = "2006-01-02"

// rentalPeriod is store policy: every rental is due five days after checkout.
const rentalPeriod = 5

const storeTimeout = 10 * time.Second

func storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

func storeFail(c *gin.Context, err error, msg string) {
	log.Println(err)
	if errors.Is(err, context.DeadlineExceeded) {
		sendError(c, http.StatusServiceUnavailable, "store timed out.")
		return
	}
	sendError(c, http.StatusBadRequest, msg)
}

// Rent opens a rental for one or more inventory items. The rental row and its
// lines commit together or not at all.
func (api *API) Rent(c *gin.Context) {
	u := ParseIdentity(c)

	var req models.NewRental
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if req.CustomerId == 0 {
		sendError(c, http.StatusBadRequest, "missing-customer-id")
		return
	}

	inventoryIds, err := splitIdList(req.InventoryIds)
	if err != nil || len(inventoryIds) == 0 {
		sendError(c, http.StatusBadRequest, "invalid-inventory-ids")
		return
	}

	ctx, cancel := storeCtx()
	defer cancel()

	tx, err := api.Db.BeginTx(ctx, nil)
	if err != nil {
		storeFail(c, err, "unable to rent movie(s).")
		return
	}

	defer tx.Rollback()

	rentedOn := time.Now()
	dueDate := rentedOn.AddDate(0, 0, rentalPeriod)

	var rentalId int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO rentals (customer_id, rented_by, rented_on, due_date)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, req.CustomerId, u.Id, rentedOn, dueDate).Scan(&rentalId); err != nil {
		storeFail(c, err, "unable to rent movie(s).")
		return
	}

	for _, inventoryId := range inventoryIds {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO inventory_rentals (inventory_id, rental_id) VALUES ($1, $2)
		`, inventoryId, rentalId); err != nil {
			storeFail(c, err, "unable to rent movie(s).")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		storeFail(c, err, "unable to rent movie(s).")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": rentalId})
}

func (api *API) GetCurrentRentals(c *gin.Context) {
	asExcel, _ := strconv.ParseBool(c.Query("export_as_excel"))

	rentals, err := api.currentRentals()
	if err != nil {
		storeFail(c, err, "unable to retrieve current rentals.")
		return
	}

	if asExcel {
		handleExcelRentals(c, rentals)
		return
	}

	c.JSON(http.StatusOK, rentals)
}

func (api *API) GetCurrentRental(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "rental id was not provided.")
		return
	}

	var rental models.Rental
	var charge sql.NullFloat64
	if err := api.Db.QueryRow(`
		SELECT id, customer_name, customer_id, titles, movie_ids, inventory_ids, rented_on, due_date, charge
		FROM all_rentals WHERE returned_on IS NULL AND id = $1
	`, id).Scan(&rental.Id, &rental.CustomerName, &rental.CustomerId, &rental.Titles,
		&rental.MovieIds, &rental.InventoryIds, &rental.RentedOn, &rental.DueDate, &charge); err != nil {
		if err == sql.ErrNoRows {
			// a closed rental is not a current rental
			sendError(c, http.StatusBadRequest, "rental not found.")
			return
		}
		storeFail(c, err, "unable to retrieve rental.")
		return
	}

	rental.Charge = charge.Float64
	c.JSON(http.StatusOK, rental)
}

// Return closes an open rental, recording one rating row per submitted
// (movie id, rating) pair first. The whole transition commits atomically, and
// a closed rental can never be closed a second time.
func (api *API) Return(c *gin.Context) {
	var req models.ReturnInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Id == 0 {
		sendError(c, http.StatusBadRequest, "missing-rental-id")
		return
	}

	var movieIds, ratings []int64
	if req.MovieIds != "" || req.Ratings != "" {
		// rating rows are attributed to the customer, so one is required
		if req.CustomerId == 0 {
			sendError(c, http.StatusBadRequest, "missing-customer-id")
			return
		}
		var err error
		if movieIds, err = splitIdList(req.MovieIds); err != nil {
			sendError(c, http.StatusBadRequest, "invalid-movie-ids")
			return
		}
		if ratings, err = splitIdList(req.Ratings); err != nil {
			sendError(c, http.StatusBadRequest, "invalid-ratings")
			return
		}
		if len(movieIds) != len(ratings) {
			sendError(c, http.StatusBadRequest, "movie-ids-ratings-mismatch")
			return
		}
	}

	ctx, cancel := storeCtx()
	defer cancel()

	tx, err := api.Db.BeginTx(ctx, nil)
	if err != nil {
		storeFail(c, err, "unable to return rental.")
		return
	}

	defer tx.Rollback()

	var returnedOn sql.NullTime
	if err := tx.QueryRowContext(ctx, `SELECT returned_on FROM rentals WHERE id = $1`, req.Id).Scan(&returnedOn); err != nil {
		if err == sql.ErrNoRows {
			sendError(c, http.StatusBadRequest, "rental not found.")
			return
		}
		storeFail(c, err, "unable to return rental.")
		return
	}

	if returnedOn.Valid {
		sendError(c, http.StatusBadRequest, "rental already returned.")
		return
	}

	for i, movieId := range movieIds {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ratings (movie_id, customer_id, rating) VALUES ($1, $2, $3)
		`, movieId, req.CustomerId, ratings[i]); err != nil {
			storeFail(c, err, "unable to return rental.")
			return
		}
	}

	tag, err := tx.ExecContext(ctx, `
		UPDATE rentals SET returned_on = $1 WHERE id = $2 AND returned_on IS NULL
	`, time.Now(), req.Id)
	if err != nil {
		storeFail(c, err, "unable to return rental.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "rental already returned.")
		return
	}

	if err := tx.Commit(); err != nil {
		storeFail(c, err, "unable to return rental.")
		return
	}

	sendMessage(c, "rental returned.")
}

// currentRentals orders by rented_on then id so the listing is stable.
func (api *API) currentRentals() ([]models.Rental, error) {
	ctx, cancel := storeCtx()
	defer cancel()

	rows, err := api.Db.QueryContext(ctx, `
		SELECT id, customer_name, customer_id, titles, movie_ids, inventory_ids, rented_on, due_date, charge
		FROM all_rentals WHERE returned_on IS NULL
		ORDER BY rented_on, id
	`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	rentals := []models.Rental{}
	for rows.Next() {
		var rental models.Rental
		var charge sql.NullFloat64
		if err := rows.Scan(&rental.Id, &rental.CustomerName, &rental.CustomerId, &rental.Titles,
			&rental.MovieIds, &rental.InventoryIds, &rental.RentedOn, &rental.DueDate, &charge); err != nil {
			return nil, err
		}
		rental.Charge = charge.Float64
		rentals = append(rentals, rental)
	}

	return rentals, rows.Err()
}

func handleExcelRentals(c *gin.Context, rentals []models.Rental) {
	if len(rentals) == 0 {
		sendError(c, http.StatusBadRequest, "rentals-not-found")
		return
	}

	f := excelize.NewFile()

	sheet := "Current Rentals"
	f.NewSheet(sheet)
	// delete default sheet
	f.DeleteSheet("Sheet1")

	err := f.SetColWidth(sheet, "A", "E", 50)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	headerStyle, err := f.NewStyle(s1)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	dataStyle, err := f.NewStyle(s2)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	streamWriter, err := f.NewStreamWriter(sheet)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err = streamWriter.SetRow("A1", []interface{}{
		excelize.Cell{StyleID: headerStyle, Value: "Customer"},
		excelize.Cell{StyleID: headerStyle, Value: "Titles"},
		excelize.Cell{StyleID: headerStyle, Value: "Rented On"},
		excelize.Cell{StyleID: headerStyle, Value: "Due Date"},
		excelize.Cell{StyleID: headerStyle, Value: "Charge"}}); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	for n, rental := range rentals {
		chargeFormatted := fmt.Sprintf("$%s", humanize.Commaf(rental.Charge))

		row := make([]interface{}, 5)
		row[0] = excelize.Cell{StyleID: dataStyle, Value: rental.CustomerName}
		row[1] = excelize.Cell{StyleID: dataStyle, Value: rental.Titles}
		row[2] = excelize.Cell{StyleID: dataStyle, Value: rental.RentedOn.Format(dateFormat)}
		row[3] = excelize.Cell{StyleID: dataStyle, Value: rental.DueDate.Format(dateFormat)}
		row[4] = excelize.Cell{StyleID: dataStyle, Value: chargeFormatted}

		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err = streamWriter.SetRow(cell, row); err != nil {
			sendError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := streamWriter.Flush(); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	fileName := fmt.Sprintf("report_rentals_%s.xlsx", time.Now().UTC().Format("20060102_150405"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment;filename=\""+fileName+"\"")

	if _, err := f.WriteTo(c.Writer); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}
}
