package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/middleware"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
	"github.com/imanrao90/doctor-appointment-backend/internal/utils"
)

// doctorID extracts the authenticated doctor id set by the auth guard.
func doctorID(c *gin.Context) (primitive.ObjectID, bool) {
	hex := c.GetString(middleware.CtxDoctorID)
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		utils.FailMsg(c, http.StatusUnauthorized, "Not Authorized login again")
		return primitive.NilObjectID, false
	}
	return id, true
}

// LoginDoctor checks the doctor's credentials and issues the doctor token.
func (h *Handler) LoginDoctor(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	doctor, err := h.Stores.Doctors.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.FailMsg(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Log.Error().Err(err).Msg("doctor login lookup")
		utils.FailMsg(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if !utils.CheckPasswordHash(req.Password, doctor.Password) {
		utils.FailMsg(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(h.Cfg.JWTSecret, doctor.ID.Hex(), utils.RoleDoctor)
	if err != nil {
		h.Log.Error().Err(err).Msg("doctor token issue")
		utils.FailMsg(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	utils.OK(c, gin.H{"token": token})
}

// DoctorList is the public directory: credentials and emails redacted.
func (h *Handler) DoctorList(c *gin.Context) {
	doctors, err := h.Svc.ListDoctors(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	for i := range doctors {
		doctors[i].Email = ""
	}
	utils.OK(c, gin.H{"doctors": doctors})
}

// DoctorAppointments lists the authenticated doctor's appointments.
func (h *Handler) DoctorAppointments(c *gin.Context) {
	docID, ok := doctorID(c)
	if !ok {
		return
	}
	appointments, err := h.Svc.AppointmentsForDoctor(c.Request.Context(), docID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"appointments": appointments})
}

// CompleteAppointment marks one of the doctor's own appointments completed.
func (h *Handler) CompleteAppointment(c *gin.Context) {
	docID, ok := doctorID(c)
	if !ok {
		return
	}
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

	if err := h.Svc.Complete(c.Request.Context(), id, docID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"message": "Appointment Completed"})
}

// CancelAppointmentDoctor cancels one of the doctor's own appointments.
func (h *Handler) CancelAppointmentDoctor(c *gin.Context) {
	docID, ok := doctorID(c)
	if !ok {
		return
	}
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

	if err := h.Svc.CancelOwned(c.Request.Context(), id, docID, utils.RoleDoctor); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"message": "Appointment Cancelled"})
}

// DoctorDashboard returns the authenticated doctor's panel summary.
func (h *Handler) DoctorDashboard(c *gin.Context) {
	docID, ok := doctorID(c)
	if !ok {
		return
	}
	dashData, err := h.Svc.DoctorSummary(c.Request.Context(), docID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"dashData": dashData})
}
