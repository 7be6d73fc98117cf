package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imanrao90/doctor-appointment-backend/internal/middleware"
)

// RegisterRoutes mounts the full HTTP surface on r. The three route groups
// mirror the admin, doctor and user frontends.
func RegisterRoutes(r *gin.Engine, h *Handler, limiter *middleware.RateLimiter) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API WORKING")
	})

	login := middleware.RateLimit(limiter)

	adminRoutes := r.Group("/api/admin")
	{
		adminRoutes.POST("/login", login, h.LoginAdmin)

		guarded := adminRoutes.Group("", middleware.AdminAuth(h.Cfg.JWTSecret, h.Cfg.AdminEmail))
		guarded.POST("/add-doctor", h.AddDoctor)
		guarded.GET("/all-doctors", h.AllDoctors)
		guarded.GET("/appointments", h.AppointmentsAdmin)
		guarded.POST("/cancel-appointment", h.CancelAppointment)
		guarded.GET("/dashboard", h.AdminDashboard)
		guarded.POST("/change-availability", h.ChangeAvailability)
	}

	doctorRoutes := r.Group("/api/doctor")
	{
		doctorRoutes.POST("/login", login, h.LoginDoctor)
		doctorRoutes.GET("/list", h.DoctorList)

		guarded := doctorRoutes.Group("", middleware.DoctorAuth(h.Cfg.JWTSecret))
		guarded.GET("/appointments", h.DoctorAppointments)
		guarded.POST("/complete-appointment", h.CompleteAppointment)
		guarded.POST("/cancel-appointment", h.CancelAppointmentDoctor)
		guarded.GET("/dashboard", h.DoctorDashboard)
	}

	userRoutes := r.Group("/api/user")
	{
		userRoutes.POST("/register", login, h.RegisterUser)
		userRoutes.POST("/login", login, h.LoginUser)

		guarded := userRoutes.Group("", middleware.UserAuth(h.Cfg.JWTSecret))
		guarded.GET("/get-profile", h.GetProfile)
		guarded.POST("/book-appointment", h.BookAppointment)
		guarded.GET("/appointments", h.UserAppointments)
		guarded.POST("/cancel-appointment", h.CancelAppointmentUser)
	}
}
