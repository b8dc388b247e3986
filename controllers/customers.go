package controllers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"rentalapi/models"

	"github.com/gin-gonic/gin"
)

func (api *API) CreateCustomer(c *gin.Context) {
	u := ParseIdentity(c)

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateCustomer(customer); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var id int64
	if err := api.Db.QueryRow(`
		INSERT INTO customers (first, last, email, address, city, state, zip, phone, modified_by, modified_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id
	`, customer.First, customer.Last, customer.Email, customer.Address, customer.City,
		customer.State, customer.Zip, customer.Phone, u.Id, time.Now()).Scan(&id); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create customer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (api *API) GetCustomers(c *gin.Context) {
	rows, err := api.Db.Query(`SELECT id, first, last, full, email, address, city, state, zip, phone FROM all_customers`)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve customers.")
		return
	}

	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(&customer.Id, &customer.First, &customer.Last, &customer.Full,
			&customer.Email, &customer.Address, &customer.City, &customer.State,
			&customer.Zip, &customer.Phone); err != nil {
			log.Println(err)
			sendError(c, http.StatusBadRequest, "unable to retrieve customers.")
			return
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve customers.")
		return
	}

	c.JSON(http.StatusOK, customers)
}

func (api *API) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "customer id was not provided.")
		return
	}

	var customer models.Customer
	if err := api.Db.QueryRow(`
		SELECT id, first, last, full, email, address, city, state, zip, phone
		FROM all_customers WHERE id = $1
	`, id).Scan(&customer.Id, &customer.First, &customer.Last, &customer.Full,
		&customer.Email, &customer.Address, &customer.City, &customer.State,
		&customer.Zip, &customer.Phone); err != nil {
		if err == sql.ErrNoRows {
			sendError(c, http.StatusBadRequest, "customer not found.")
			return
		}
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve customer.")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (api *API) UpdateCustomer(c *gin.Context) {
	u := ParseIdentity(c)

	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "customer id was not provided.")
		return
	}

	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateCustomer(customer); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := api.Db.Exec(`
		UPDATE customers SET first = $1, last = $2, email = $3, address = $4, city = $5,
			state = $6, zip = $7, phone = $8, modified_by = $9, modified_on = $10
		WHERE id = $11
	`, customer.First, customer.Last, customer.Email, customer.Address, customer.City,
		customer.State, customer.Zip, customer.Phone, u.Id, time.Now(), id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to update customer.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "customer not found.")
		return
	}

	customer.Id = id
	c.JSON(http.StatusOK, customer)
}

func (api *API) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "customer id was not provided.")
		return
	}

	tag, err := api.Db.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to remove customer.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "customer not found.")
		return
	}

	sendMessage(c, "customer removed.")
}

func validateCustomer(customer models.Customer) error {
	if customer.First == "" {
		return errors.New("missing-first")
	}

	if customer.Last == "" {
		return errors.New("missing-last")
	}

	if customer.Email == "" {
		return errors.New("missing-email")
	}

	if _, err := mail.ParseAddress(customer.Email); err != nil {
		return errors.New("invalid-email")
	}

	if customer.Phone == "" {
		return errors.New("missing-phone")
	}

	return nil
}
