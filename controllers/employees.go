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

// Employees are identity rows with a store profile; writes here are
// admin-gated by the router since they can change roles.
func (api *API) CreateEmployee(c *gin.Context) {
	u := ParseIdentity(c)

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateEmployee(employee, true); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	role := employee.Role
	if role != string(models.Admin) {
		role = string(models.EmployeeRole)
	}

	stored, err := encodeCredential(employee.Password)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create employee.")
		return
	}

	var id int64
	if err := api.Db.QueryRow(`
		INSERT INTO users (email, password, role, first, last, address, city, state, zip, phone, modified_by, modified_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id
	`, employee.Email, stored, role, employee.First, employee.Last, employee.Address,
		employee.City, employee.State, employee.Zip, employee.Phone, u.Id, time.Now()).Scan(&id); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create employee.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (api *API) GetEmployees(c *gin.Context) {
	rows, err := api.Db.Query(`SELECT id, email, role, first, last, address, city, state, zip, phone FROM all_employees`)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve employees.")
		return
	}

	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var employee models.Employee
		if err := rows.Scan(&employee.Id, &employee.Email, &employee.Role, &employee.First,
			&employee.Last, &employee.Address, &employee.City, &employee.State,
			&employee.Zip, &employee.Phone); err != nil {
			log.Println(err)
			sendError(c, http.StatusBadRequest, "unable to retrieve employees.")
			return
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve employees.")
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (api *API) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "employee id was not provided.")
		return
	}

	var employee models.Employee
	if err := api.Db.QueryRow(`
		SELECT id, email, role, first, last, address, city, state, zip, phone
		FROM all_employees WHERE id = $1
	`, id).Scan(&employee.Id, &employee.Email, &employee.Role, &employee.First,
		&employee.Last, &employee.Address, &employee.City, &employee.State,
		&employee.Zip, &employee.Phone); err != nil {
		if err == sql.ErrNoRows {
			sendError(c, http.StatusBadRequest, "employee not found.")
			return
		}
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to retrieve employee.")
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (api *API) UpdateEmployee(c *gin.Context) {
	u := ParseIdentity(c)

	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "employee id was not provided.")
		return
	}

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateEmployee(employee, false); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if employee.Role != string(models.Admin) {
		employee.Role = string(models.EmployeeRole)
	}

	tag, err := api.Db.Exec(`
		UPDATE users SET email = $1, role = $2, first = $3, last = $4, address = $5,
			city = $6, state = $7, zip = $8, phone = $9, modified_by = $10, modified_on = $11
		WHERE id = $12
	`, employee.Email, employee.Role, employee.First, employee.Last, employee.Address,
		employee.City, employee.State, employee.Zip, employee.Phone, u.Id, time.Now(), id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to update employee.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "employee not found.")
		return
	}

	employee.Id = id
	employee.Password = ""
	c.JSON(http.StatusOK, employee)
}

func (api *API) DeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "employee id was not provided.")
		return
	}

	tag, err := api.Db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to remove employee.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "employee not found.")
		return
	}

	sendMessage(c, "employee removed.")
}

func validateEmployee(employee models.Employee, create bool) error {
	if employee.Email == "" {
		return errors.New("missing-email")
	}

	if _, err := mail.ParseAddress(employee.Email); err != nil {
		return errors.New("invalid-email")
	}

	if employee.First == "" {
		return errors.New("missing-first")
	}

	if employee.Last == "" {
		return errors.New("missing-last")
	}

	if create {
		if employee.Password == "" {
			return errors.New("missing-password")
		}
		if len(employee.Password) < 8 {
			return errors.New("password-must-be-at-least-8-characters")
		}
	}

	return nil
}
