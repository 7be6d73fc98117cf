package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/models"
	"github.com/imanrao90/doctor-appointment-backend/internal/scheduling"
	"github.com/imanrao90/doctor-appointment-backend/internal/utils"
)

// AddDoctor onboards a doctor from the admin panel's multipart form. The
// address field arrives as a JSON string, fees as a decimal string.
func (h *Handler) AddDoctor(c *gin.Context) {
	var form struct {
		Name       string `form:"name"`
		Email      string `form:"email"`
		Password   string `form:"password"`
		Speciality string `form:"speciality"`
		Degree     string `form:"degree"`
		Experience string `form:"experience"`
		About      string `form:"about"`
		Fees       string `form:"fees"`
		Address    string `form:"address"`
	}
	if err := c.ShouldBind(&form); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Missing Details")
		return
	}

	fees, err := strconv.ParseFloat(form.Fees, 64)
	if err != nil && form.Fees != "" {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid fees")
		return
	}

	var address models.Address
	if form.Address != "" {
		if err := json.Unmarshal([]byte(form.Address), &address); err != nil {
			utils.FailMsg(c, http.StatusBadRequest, "Invalid address format (must be JSON string)")
			return
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Image is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Image is required")
		return
	}
	defer file.Close()

	imageURL, err := h.Images.Save(c.Request.Context(), file, fileHeader)
	if err != nil {
		h.Log.Error().Err(err).Msg("image upload")
		utils.FailMsg(c, http.StatusBadGateway, "Failed to store image")
		return
	}

	_, err = h.Svc.OnboardDoctor(c.Request.Context(), scheduling.DoctorProfile{
		Name:       form.Name,
		Email:      form.Email,
		Password:   form.Password,
		Speciality: form.Speciality,
		Degree:     form.Degree,
		Experience: form.Experience,
		About:      form.About,
		Fees:       fees,
		Address:    address,
		ImageURL:   imageURL,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Doctor Added"})
}

// LoginAdmin checks the configured admin credential pair and issues the
// admin token.
func (h *Handler) LoginAdmin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email != h.Cfg.AdminEmail || req.Password != h.Cfg.AdminPassword {
		utils.FailMsg(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(h.Cfg.JWTSecret, h.Cfg.AdminEmail, utils.RoleAdmin)
	if err != nil {
		h.Log.Error().Err(err).Msg("admin token issue")
		utils.FailMsg(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	utils.OK(c, gin.H{"token": token})
}

// AllDoctors lists every doctor with credentials redacted.
func (h *Handler) AllDoctors(c *gin.Context) {
	doctors, err := h.Svc.ListDoctors(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"doctors": doctors})
}

// AppointmentsAdmin lists every appointment, unfiltered.
func (h *Handler) AppointmentsAdmin(c *gin.Context) {
	appointments, err := h.Svc.ListAppointments(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"appointments": appointments})
}

// CancelAppointment cancels any appointment by id.
func (h *Handler) CancelAppointment(c *gin.Context) {
	var req struct {
		AppointmentID string `json:"appointmentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.AppointmentID)
	if err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid appointment id")
		return
	}

	if err := h.Svc.Cancel(c.Request.Context(), id); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"message": "Appointment Cancelled"})
}

// AdminDashboard returns the aggregated counts and latest appointments.
func (h *Handler) AdminDashboard(c *gin.Context) {
	dashData, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"dashData": dashData})
}

// ChangeAvailability toggles a doctor's available flag.
func (h *Handler) ChangeAvailability(c *gin.Context) {
	var req struct {
		DocID string `json:"docId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.DocID)
	if err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid doctor id")
		return
	}

	available, err := h.Svc.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"message": "Availability Changed", "available": available})
}
