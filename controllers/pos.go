package controllers

import (
	"log"
	"net/http"
	"strconv"

	"rentalapi/models"

	"github.com/gin-gonic/gin"
)

func (api *API) CreatePayment(c *gin.Context) {
	var payment models.PaymentInfo
	if err := c.ShouldBindJSON(&payment); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if payment.RentalId == 0 {
		sendError(c, http.StatusBadRequest, "missing-rental-id")
		return
	}

	if payment.PaymentType == "" {
		sendError(c, http.StatusBadRequest, "missing-payment-type")
		return
	}

	ctx, cancel := storeCtx()
	defer cancel()

	var id int64
	if err := api.Db.QueryRowContext(ctx, `
		INSERT INTO payments (rental_id, type, amount, card_ending)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, payment.RentalId, payment.PaymentType, payment.PaymentAmount, payment.CardEnding).Scan(&id); err != nil {
		storeFail(c, err, "unable to receive payment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// GetFees reports outstanding late fees per rental for one customer. The fee
// amount comes from the rental_fee_details view; zero-fee rows are filtered
// in the query, and a customer with nothing owing gets a single sentinel
// record rather than an empty list, which the POS client relies on.
func (api *API) GetFees(c *gin.Context) {
	customerId, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "customer id was not provided.")
		return
	}

	ctx, cancel := storeCtx()
	defer cancel()

	rows, err := api.Db.QueryContext(ctx, `
		SELECT rental_id, customer_id, titles, fee, is_returned
		FROM rental_fee_details
		WHERE customer_id = $1 AND fee != 0
	`, customerId)
	if err != nil {
		storeFail(c, err, "unable to retrieve fees.")
		return
	}

	defer rows.Close()

	fees := []models.RentalFee{}
	for rows.Next() {
		var fee models.RentalFee
		if err := rows.Scan(&fee.RentalId, &fee.CustomerId, &fee.Titles, &fee.Fee, &fee.IsReturned); err != nil {
			storeFail(c, err, "unable to retrieve fees.")
			return
		}
		fees = append(fees, fee)
	}

	if err := rows.Err(); err != nil {
		storeFail(c, err, "unable to retrieve fees.")
		return
	}

	if len(fees) == 0 {
		fees = append(fees, models.RentalFee{Titles: "No current fees"})
	}

	c.JSON(http.StatusOK, fees)
}
