package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"rentalapi/models"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
)

// Register creates an identity with the default employee role and signs the
// caller in immediately, mirroring the point-of-sale first-run flow.
func (api *API) Register(c *gin.Context) {
	var creds models.Creds
	if err := c.ShouldBindJSON(&creds); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateCreds(creds); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var exists bool
	if err := api.Db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", creds.Email).Scan(&exists); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create user.")
		return
	}

	if exists {
		sendError(c, http.StatusBadRequest, "email-already-exist")
		return
	}

	stored, err := encodeCredential(creds.Password)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create user.")
		return
	}

	role := string(models.EmployeeRole)

	var id int64
	if err := api.Db.QueryRow(`
		INSERT INTO users (email, password, role, modified_on)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, creds.Email, stored, role, time.Now()).Scan(&id); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create user.")
		return
	}

	token, err := GenerateToken(id, role)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to create user.")
		return
	}

	api.trackSession(id, token)

	c.JSON(http.StatusOK, models.AuthResponse{
		Info:  models.UserInfo{Id: id},
		Token: token,
	})
}

// UpdateUser renames an identity. Only first and last are caller-editable
// here; role and credential changes go through the employee and reset flows.
func (api *API) UpdateUser(c *gin.Context) {
	u := ParseIdentity(c)

	var info models.UserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if info.Id == 0 {
		info.Id = u.Id
	}

	if info.First == "" {
		sendError(c, http.StatusBadRequest, "missing-first")
		return
	}

	if info.Last == "" {
		sendError(c, http.StatusBadRequest, "missing-last")
		return
	}

	tag, err := api.Db.Exec(`
		UPDATE users SET first = $1, last = $2, modified_by = $3, modified_on = $4
		WHERE id = $5
	`, info.First, info.Last, u.Id, time.Now(), info.Id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to update user.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "user not found.")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (api *API) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "user id was not provided.")
		return
	}

	tag, err := api.Db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to remove user.")
		return
	}

	if n, _ := tag.RowsAffected(); n == 0 {
		sendError(c, http.StatusBadRequest, "user not found.")
		return
	}

	sendMessage(c, "user removed.")
}

func (api *API) GetSelfRole(c *gin.Context) {
	u := ParseIdentity(c)
	c.JSON(http.StatusOK, gin.H{"role": u.Role})
}

func (api *API) GetSelfId(c *gin.Context) {
	u := ParseIdentity(c)
	c.JSON(http.StatusOK, gin.H{"id": u.Id})
}

func (api *API) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		sendError(c, http.StatusBadRequest, "missing-email")
		return
	}

	var id int64
	if err := api.Db.QueryRow("SELECT id FROM users WHERE email = $1", req.Email).Scan(&id); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "user-not-found")
		return
	}

	token, err := uuid.NewV4()
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to reset password.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := api.Redis.Set(ctx, "reset:"+token.String(), id, 30*time.Minute).Err(); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to reset password.")
		return
	}

	if err := sendEmailReset(req.Email, token.String()); err != nil {
		sendError(c, http.StatusBadRequest, "unable to send reset email.")
		return
	}

	c.JSON(http.StatusOK, genericOK)
}

func (api *API) VerifyTokenReset(c *gin.Context) {
	token := c.Param("token")

	err := api.Redis.Get(context.Background(), "reset:"+token).Err()
	if err != nil {
		if err != redis.Nil {
			log.Println(err)
		}
		sendError(c, http.StatusBadRequest, "invalid-token")
		return
	}

	c.JSON(http.StatusOK, genericOK)
}

func (api *API) UpdateUserReset(c *gin.Context) {
	token := c.Param("token")

	var req models.PasswordReset
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if len(req.Password) < 8 {
		sendError(c, http.StatusBadRequest, "password-must-be-at-least-8-characters")
		return
	}

	if req.Password != req.PasswordConfirmation {
		sendError(c, http.StatusBadRequest, "password-confirmation-mismatch")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := api.Redis.Get(ctx, "reset:"+token).Int64()
	if err != nil {
		if err != redis.Nil {
			log.Println(err)
		}
		sendError(c, http.StatusBadRequest, "invalid-token")
		return
	}

	stored, err := encodeCredential(req.Password)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to reset password.")
		return
	}

	if _, err := api.Db.Exec(`UPDATE users SET password = $1, modified_by = $2, modified_on = $3 WHERE id = $4`,
		stored, id, time.Now(), id); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to reset password.")
		return
	}

	api.Redis.Del(ctx, "reset:"+token)
	api.Redis.Del(ctx, sessionKey(id))

	c.JSON(http.StatusOK, genericOK)
}

func validateCreds(creds models.Creds) error {
	if creds.Email == "" {
		return errors.New("missing-email")
	}

	if _, err := mail.ParseAddress(creds.Email); err != nil {
		return errors.New("invalid-email")
	}

	if creds.Password == "" {
		return errors.New("missing-password")
	}

	if len(creds.Password) < 8 {
		return errors.New("password-must-be-at-least-8-characters")
	}

	return nil
}
