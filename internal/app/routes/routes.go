package routes

import (
	"github.com/gin-gonic/gin"

	appAuth "github.com/yigit/dormitory/internal/app/auth"
	"github.com/yigit/dormitory/internal/app/controllers"
	"github.com/yigit/dormitory/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	roomController *controllers.RoomController,
	stayController *controllers.StayController,
	financeController *controllers.FinanceController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", healthController.Health)
	v1.POST("/auth/login", authController.Login)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", authController.Me)

	users := authenticated.Group("/users", authMiddleware.ModuleRequired(appAuth.ModuleAdmin))
	{
		users.POST("", authController.CreateUser)
	}

	// Balance lives under /students but belongs to the finance module
	authenticated.GET("/students/:id/balance",
		authMiddleware.ModuleRequired(appAuth.ModuleFinance), studentController.GetBalance)

	students := authenticated.Group("/students", authMiddleware.ModuleRequired(appAuth.ModuleStudents))
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/:id", studentController.GetStudent)
	}

	rooms := authenticated.Group("/rooms", authMiddleware.ModuleRequired(appAuth.ModuleRooms))
	{
		rooms.GET("", roomController.ListRooms)
		rooms.POST("", roomController.CreateRoom)
	}

	stays := authenticated.Group("/stays", authMiddleware.ModuleRequired(appAuth.ModuleStays))
	{
		stays.GET("", stayController.ListOpenStays)
		stays.POST("", stayController.CheckIn)
		stays.POST("/:id/checkout", stayController.CheckOut)
	}

	finance := authenticated.Group("", authMiddleware.ModuleRequired(appAuth.ModuleFinance))
	{
		finance.POST("/charges", financeController.AddCharge)
		finance.POST("/payments", financeController.AddPayment)
	}

	reports := authenticated.Group("/reports", authMiddleware.ModuleRequired(appAuth.ModuleReports))
	{
		reports.GET("/debtors", financeController.Debtors)
	}
}
