package controllers

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"rentalapi/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const tokenTTL = 30 * time.Minute

func (api *API) Authenticate(c *gin.Context) {
	var creds models.Creds
	if err := c.ShouldBindJSON(&creds); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "invalid request")
		return
	}

	if creds.Email == "" || creds.Password == "" {
		sendError(c, http.StatusBadRequest, "missing-email-or-password")
		return
	}

	var (
		id          int64
		first, last sql.NullString
		stored      string
		role        string
	)
	err := api.Db.QueryRow(`
		SELECT id, first, last, password, role
		FROM users
		WHERE email = $1
	`, creds.Email).Scan(&id, &first, &last, &stored, &role)

	if err != nil {
		if err != sql.ErrNoRows {
			log.Println(err)
		}
		sendError(c, http.StatusUnauthorized, "unable to authenticate user.")
		return
	}

	if !checkCredential(creds.Password, stored) {
		sendError(c, http.StatusUnauthorized, "unable to authenticate user.")
		return
	}

	if _, err := api.Db.Exec(`UPDATE users SET last_login = $1 WHERE id = $2`, time.Now(), id); err != nil {
		log.Println(err)
		sendError(c, http.StatusUnauthorized, "unable to authenticate user.")
		return
	}

	token, err := GenerateToken(id, role)
	if err != nil {
		log.Println(err)
		sendError(c, http.StatusUnauthorized, "unable to authenticate user.")
		return
	}

	api.trackSession(id, token)

	c.JSON(http.StatusOK, models.AuthResponse{
		Info:  models.UserInfo{Id: id, First: first.String, Last: last.String},
		Token: token,
	})
}

func (api *API) Logout(c *gin.Context) {
	u := ParseIdentity(c)

	if err := api.Redis.Del(context.Background(), sessionKey(u.Id)).Err(); err != nil {
		log.Println(err)
		sendError(c, http.StatusBadRequest, "unable to log out.")
		return
	}

	c.JSON(http.StatusOK, genericOK)
}

// GenerateToken signs a stateless HS256 token carrying the identity and its
// role. Expiry is the only time bound; nothing about the token is persisted.
func GenerateToken(id int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   id,
		"role": role,
		"iat":  time.Now().UTC().Unix(),
		"exp":  time.Now().UTC().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// trackSession records the latest issued token per user so operators can see
// who is signed in and logout can clear it. Authorization never reads this.
func (api *API) trackSession(id int64, token string) {
	if api.Redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if old, _ := api.Redis.Get(ctx, sessionKey(id)).Result(); old != "" {
		log.Println("removing old session..")
		api.Redis.Del(ctx, sessionKey(id))
	}
	if err := api.Redis.Set(ctx, sessionKey(id), token, tokenTTL).Err(); err != nil {
		log.Println(err)
	}
}

func sessionKey(id int64) string {
	return fmt.Sprintf("auth:%d", id)
}
