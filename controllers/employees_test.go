package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentalapi/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gotest.tools/assert"
)

func TestCreateEmployee(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.Equal(t, nil, err)

	api := NewAPI()
	api.Db = db

	var genericResp GenericResponse

	validations := []struct {
		employee models.Employee
		message  string
	}{
		{models.Employee{}, "missing-email"},
		{models.Employee{Email: "not-an-email"}, "invalid-email"},
		{models.Employee{Email: "dwight@dm.com"}, "missing-first"},
		{models.Employee{Email: "dwight@dm.com", First: "Dwight"}, "missing-last"},
		{models.Employee{Email: "dwight@dm.com", First: "Dwight", Last: "Schrute"}, "missing-password"},
		{models.Employee{Email: "dwight@dm.com", First: "Dwight", Last: "Schrute", Password: "beets"}, "password-must-be-at-least-8-characters"},
	}

	for _, v := range validations {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		asIdentity(c, 1, "admin")
		req, _ := http.NewRequest("POST", "", parsePayload(v.employee))
		c.Request = req
		api.CreateEmployee(c)

		err = json.NewDecoder(w.Body).Decode(&genericResp)
		assert.Equal(t, nil, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, v.message, genericResp.Message)
	}

	employee := models.Employee{
		Email: "dwight@dm.com", Role: "manager", First: "Dwight", Last: "Schrute",
		Address: "Schrute Farms", City: "Honesdale", State: "PA",
		Zip: "18431", Phone: "555-0111", Password: "battlestar-galactica",
	}

	// store failure is not leaked (400)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	asIdentity(c, 1, "admin")

	dbMock.ExpectQuery("INSERT INTO users.*").WillReturnError(errors.New("err-insert"))

	req, _ := http.NewRequest("POST", "", parsePayload(employee))
	c.Request = req
	api.CreateEmployee(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unable to create employee.", genericResp.Message)

	// 200, unrecognized role collapses to employee
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	asIdentity(c, 1, "admin")

	dbMock.ExpectQuery("INSERT INTO users.*").
		WithArgs("dwight@dm.com", sqlmock.AnyArg(), "employee", "Dwight", "Schrute",
			"Schrute Farms", "Honesdale", "PA", "18431", "555-0111", int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	req, _ = http.NewRequest("POST", "", parsePayload(employee))
	c.Request = req
	api.CreateEmployee(c)

	var idResp struct {
		Id int64 `json:"id"`
	}
	err = json.NewDecoder(w.Body).Decode(&idResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8), idResp.Id)
	assert.Equal(t, nil, dbMock.ExpectationsWereMet())
}

func TestGetEmployees(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.Equal(t, nil, err)

	api := NewAPI()
	api.Db = db

	// err-select (400)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, email, role.*").WillReturnError(errors.New("err-select"))

	req, _ := http.NewRequest("GET", "", nil)
	c.Request = req
	api.GetEmployees(c)

	var genericResp GenericResponse
	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unable to retrieve employees.", genericResp.Message)

	// 200, password never leaves the store layer
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, email, role.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "first", "last", "address", "city", "state", "zip", "phone"}).
			AddRow(1, "michael@dm.com", "admin", "Michael", "Scott", "126 Kellum Ct", "Scranton", "PA", "18503", "555-0100").
			AddRow(8, "dwight@dm.com", "employee", "Dwight", "Schrute", "Schrute Farms", "Honesdale", "PA", "18431", "555-0111"))

	req, _ = http.NewRequest("GET", "", nil)
	c.Request = req
	api.GetEmployees(c)

	var employees []models.Employee
	err = json.NewDecoder(w.Body).Decode(&employees)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, len(employees))
	assert.Equal(t, "admin", employees[0].Role)
	assert.Equal(t, "", employees[1].Password)
	assert.Equal(t, nil, dbMock.ExpectationsWereMet())
}

func TestGetEmployee(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.Equal(t, nil, err)

	api := NewAPI()
	api.Db = db

	var genericResp GenericResponse

	// missing id (400)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "", nil)
	c.Request = req
	api.GetEmployee(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "employee id was not provided.", genericResp.Message)

	// unknown employee (400)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, email, role.*").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req, _ = http.NewRequest("GET", "?id=99", nil)
	c.Request = req
	api.GetEmployee(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "employee not found.", genericResp.Message)

	// 200
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, email, role.*").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "first", "last", "address", "city", "state", "zip", "phone"}).
			AddRow(8, "dwight@dm.com", "employee", "Dwight", "Schrute", "Schrute Farms", "Honesdale", "PA", "18431", "555-0111"))

	req, _ = http.NewRequest("GET", "?id=8", nil)
	c.Request = req
	api.GetEmployee(c)

	var employee models.Employee
	err = json.NewDecoder(w.Body).Decode(&employee)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8), employee.Id)
	assert.Equal(t, "Schrute Farms", employee.Address)
	assert.Equal(t, nil, dbMock.ExpectationsWereMet())
}

func TestUpdateEmployee(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.Equal(t, nil, err)

	api := NewAPI()
	api.Db = db

	employee := models.Employee{
		Email: "dwight@dm.com", Role: "admin", First: "Dwight", Last: "Schrute",
		Address: "Schrute Farms", City: "Honesdale", State: "PA",
		Zip: "18431", Phone: "555-0111",
	}

	var genericResp GenericResponse

	// unknown employee (400)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	asIdentity(c, 1, "admin")

	dbMock.ExpectExec("UPDATE users SET.*").WillReturnResult(sqlmock.NewResult(0, 0))

	req, _ := http.NewRequest("PUT", "?id=99", parsePayload(employee))
	c.Request = req
	api.UpdateEmployee(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "employee not found.", genericResp.Message)

	// 200, role promotion sticks when it is a known role
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	asIdentity(c, 1, "admin")

	dbMock.ExpectExec("UPDATE users SET.*").
		WithArgs("dwight@dm.com", "admin", "Dwight", "Schrute", "Schrute Farms",
			"Honesdale", "PA", "18431", "555-0111", int64(1), sqlmock.AnyArg(), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, _ = http.NewRequest("PUT", "?id=8", parsePayload(employee))
	c.Request = req
	api.UpdateEmployee(c)

	var updated models.Employee
	err = json.NewDecoder(w.Body).Decode(&updated)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8), updated.Id)
	assert.Equal(t, "admin", updated.Role)
	assert.Equal(t, "", updated.Password)
	assert.Equal(t, nil, dbMock.ExpectationsWereMet())
}

func TestDeleteEmployee(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.Equal(t, nil, err)

	api := NewAPI()
	api.Db = db

	var genericResp GenericResponse

	// 200
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	dbMock.ExpectExec("DELETE FROM users.*").WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, _ := http.NewRequest("DELETE", "?id=8", nil)
	c.Request = req
	api.DeleteEmployee(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "employee removed.", genericResp.Message)

	// gone already (400)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectExec("DELETE FROM users.*").WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req, _ = http.NewRequest("DELETE", "?id=8", nil)
	c.Request = req
	api.DeleteEmployee(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "employee not found.", genericResp.Message)
	assert.Equal(t, nil, dbMock.ExpectationsWereMet())
}
