package routers

import (
	"database/sql"
	"log"
	"os"
	"time"

	"rentalapi/controllers"
	"rentalapi/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
)

func Route() *gin.Engine {
	router := gin.Default()
	router.Use(CORS())
	api := controllers.NewAPI()

	api.Db = newDB(nil)
	api.Db.SetConnMaxLifetime(5 * time.Minute)
	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")

	api.Redis = redis.NewClient(&redis.Options{
		Addr: redisHost + ":" + redisPort,
		DB:   0,
	})

	secret := []byte(os.Getenv("JWT_SECRET"))
	auth := middlewares.Auth(secret)
	admin := middlewares.AdminOnly()

	user := router.Group("/api/user")
	{
		user.POST("/auth", api.Authenticate)
		user.POST("/", api.Register)
		user.PUT("/", auth, api.UpdateUser)
		user.DELETE("/", auth, api.DeleteUser)
		user.GET("/self/role", auth, api.GetSelfRole)
		user.GET("/self/id", auth, api.GetSelfId)
		user.GET("/logout", auth, api.Logout)
		user.POST("/forgot-password", api.ForgotPassword)
		user.GET("/verify-token/:token", api.VerifyTokenReset)
		user.POST("/reset-password/:token", api.UpdateUserReset)
	}

	customers := router.Group("/api/customers")
	{
		customers.POST("/", auth, api.CreateCustomer)
		customers.GET("/all", api.GetCustomers)
		customers.GET("/", api.GetCustomer)
		customers.PUT("/", auth, api.UpdateCustomer)
		customers.DELETE("/", auth, api.DeleteCustomer)
	}

	employees := router.Group("/api/employees")
	employees.Use(auth)
	{
		employees.POST("/", admin, api.CreateEmployee)
		employees.GET("/all", api.GetEmployees)
		employees.GET("/", api.GetEmployee)
		employees.PUT("/", admin, api.UpdateEmployee)
		employees.DELETE("/", admin, api.DeleteEmployee)
	}

	movies := router.Group("/api/movies")
	{
		movies.POST("/", auth, api.CreateMovie)
		movies.GET("/all", api.GetMovies)
		movies.GET("/", api.GetMovie)
		movies.PUT("/", auth, api.UpdateMovie)
		movies.DELETE("/", auth, api.DeleteMovie)
	}

	inventory := router.Group("/api/inventory")
	{
		inventory.POST("/", auth, api.CreateInventory)
		inventory.GET("/all", api.GetAvailableInventory)
		inventory.GET("/", api.GetInventory)
		inventory.DELETE("/", auth, api.DeleteInventory)
	}

	rentals := router.Group("/api/rentals")
	{
		rentals.POST("/rent", auth, api.Rent)
		rentals.GET("/current/all", api.GetCurrentRentals)
		rentals.GET("/report", auth, api.GetCurrentRentals)
		rentals.GET("/current", api.GetCurrentRental)
		rentals.POST("/return", auth, api.Return)
	}

	pos := router.Group("/api/pos")
	{
		pos.POST("/payment", auth, api.CreatePayment)
		pos.GET("/fees", api.GetFees)
	}

	return router
}

// CORS Cross Origin Resource Sharing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, "+
			"Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func newDB(indb *sql.DB) *sql.DB {
	if indb != nil {
		return indb
	}
	connString := os.Getenv("DB_CONNECTION_STRING")
	if connString == "" {
		log.Fatal("Please provide DB_CONNECTION_STRING environment variable")
	}

	conn, err := sql.Open("postgres", connString)
	if err != nil {
		log.Fatalf("Cannot connect to db: %v", err)
	}

	if err = conn.Ping(); err != nil {
		log.Fatal(err)
	}

	return conn
}
