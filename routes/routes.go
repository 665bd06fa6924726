package routes

import (
	"estate-api/controllers"
	"estate-api/middleware"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

// Controllers agrupa todo lo que necesita el router
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Listing *controllers.ListingController
}

// SetupRouter arma el engine de gin con todas las rutas de la API
func SetupRouter(ctrls Controllers, tokens *utils.TokenManager, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery())
	router.Use(middleware.CORS(corsOrigin))
	router.Use(middleware.ErrorHandler())

	verifyUser := middleware.VerifyUser(tokens)

	router.GET("/health", controllers.HealthCheck)

	api := router.Group("/api")

	// Rutas de autenticación (públicas)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", ctrls.Auth.SignUp)
		auth.POST("/signin", ctrls.Auth.SignIn)
		auth.POST("/google", ctrls.Auth.Google)
		auth.POST("/signout", ctrls.Auth.SignOut)
	}

	// Rutas de usuario (todas requieren sesión)
	user := api.Group("/user")
	user.Use(verifyUser)
	{
		user.GET("/:id", ctrls.User.GetUser)
		user.PUT("/:id", ctrls.User.UpdateUser)
		user.DELETE("/:id", ctrls.User.DeleteUser)
	}

	// Rutas de publicaciones: lectura pública, escritura solo del dueño
	listings := api.Group("/listings")
	{
		listings.GET("", ctrls.Listing.GetListings)
		listings.GET("/:listingId", ctrls.Listing.GetListing)

		listings.POST("", verifyUser, ctrls.Listing.CreateListing)
		listings.GET("/user/:userId", verifyUser, ctrls.Listing.GetUserListings)
		listings.PUT("/:listingId", verifyUser, ctrls.Listing.UpdateListing)
		listings.DELETE("/:listingId", verifyUser, ctrls.Listing.DeleteListing)
	}

	router.NoRoute(middleware.NotFound)

	return router
}
