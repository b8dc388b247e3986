package controllers

import (
	"bytes"
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
)

func init() {
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lshortfile)
	gin.SetMode(gin.TestMode)
}

func parsePayload(p interface{}) *bytes.Buffer {
	data, _ := json.Marshal(p)
	return bytes.NewBuffer(data)
}

func asIdentity(c *gin.Context, id int64, role string) {
	c.Set("user_id", id)
	c.Set("role", role)
}
