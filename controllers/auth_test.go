package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"rentalapi/middlewares"
	"rentalapi/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v8"
	"gotest.tools/assert"
)

func TestAuthenticate(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	db, dbMock, err := sqlmock.New()
	assert.Equal(t, nil, err)

	api := NewAPI()
	api.Db = db

	var genericResp GenericResponse

	// nil request (400)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("POST", "", nil)
	c.Request = req
	api.Authenticate(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request", genericResp.Message)

	// missing fields (400)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	req, _ = http.NewRequest("POST", "", parsePayload(models.Creds{}))
	c.Request = req
	api.Authenticate(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing-email-or-password", genericResp.Message)

	// store failure is not leaked (401)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, first, last.*").WillReturnError(errors.New("err-select"))

	req, _ = http.NewRequest("POST", "", parsePayload(models.Creds{Email: "jan@store.com", Password: "test1234"}))
	c.Request = req
	api.Authenticate(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unable to authenticate user.", genericResp.Message)

	// unknown email (401)
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, first, last.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first", "last", "password", "role"}))

	req, _ = http.NewRequest("POST", "", parsePayload(models.Creds{Email: "jan@store.com", Password: "test1234"}))
	c.Request = req
	api.Authenticate(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unable to authenticate user.", genericResp.Message)

	// wrong password (401)
	stored, err := encodeCredential("other-password")
	assert.Equal(t, nil, err)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, first, last.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first", "last", "password", "role"}).
			AddRow(3, "Jan", "Smith", stored, "admin"))

	req, _ = http.NewRequest("POST", "", parsePayload(models.Creds{Email: "jan@store.com", Password: "test1234"}))
	c.Request = req
	api.Authenticate(c)

	err = json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unable to authenticate user.", genericResp.Message)

	// 200, token decodes back to the stored identity and role
	stored, err = encodeCredential("test1234")
	assert.Equal(t, nil, err)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	dbMock.ExpectQuery("SELECT id, first, last.*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first", "last", "password", "role"}).
			AddRow(3, "Jan", "Smith", stored, "admin"))
	dbMock.ExpectExec("UPDATE users SET last_login.*").WithArgs(sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, _ = http.NewRequest("POST", "", parsePayload(models.Creds{Email: "jan@store.com", Password: "test1234"}))
	c.Request = req
	api.Authenticate(c)

	var authResp models.AuthResponse
	err = json.NewDecoder(w.Body).Decode(&authResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), authResp.Info.Id)
	assert.Equal(t, "Jan", authResp.Info.First)
	assert.Equal(t, "Smith", authResp.Info.Last)

	claims, err := middlewares.DecodeToken(authResp.Token, []byte("test-secret"))
	assert.Equal(t, nil, err)
	assert.Equal(t, float64(3), claims["id"])
	assert.Equal(t, "admin", claims["role"])

	assert.Equal(t, nil, dbMock.ExpectationsWereMet())
}

func TestLogout(t *testing.T) {
	redisDb, redisMock := redismock.NewClientMock()

	api := NewAPI()
	api.Redis = redisDb

	redisMock.ExpectDel("auth:7").SetVal(1)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "", nil)
	c.Request = req
	asIdentity(c, 7, "employee")
	api.Logout(c)

	var genericResp GenericResponse
	err := json.NewDecoder(w.Body).Decode(&genericResp)
	assert.Equal(t, nil, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", genericResp.Message)
	assert.Equal(t, nil, redisMock.ExpectationsWereMet())
}
