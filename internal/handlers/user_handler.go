package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/middleware"
	"github.com/imanrao90/doctor-appointment-backend/internal/models"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
	"github.com/imanrao90/doctor-appointment-backend/internal/utils"
)

func userID(c *gin.Context) (primitive.ObjectID, bool) {
	hex := c.GetString(middleware.CtxUserID)
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		utils.FailMsg(c, http.StatusUnauthorized, "Not Authorized login again")
		return primitive.NilObjectID, false
	}
	return id, true
}

// RegisterUser creates a patient account and issues a token.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.FailMsg(c, http.StatusBadRequest, "Missing Details")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Please enter a valid email")
		return
	}
	if len(req.Password) < 8 {
		utils.FailMsg(c, http.StatusBadRequest, "Please enter a strong password (min 8 chars)")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Stores.Users.FindByEmail(ctx, req.Email); err == nil {
		utils.FailMsg(c, http.StatusConflict, "User with this email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.Log.Error().Err(err).Msg("register lookup")
		utils.FailMsg(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		h.Log.Error().Err(err).Msg("register hash")
		utils.FailMsg(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Date:     time.Now().UnixMilli(),
	}
	id, err := h.Stores.Users.Insert(ctx, user)
	if err != nil {
		h.Log.Error().Err(err).Msg("register insert")
		utils.FailMsg(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	token, err := utils.GenerateJWT(h.Cfg.JWTSecret, id.Hex(), utils.RoleUser)
	if err != nil {
		h.Log.Error().Err(err).Msg("user token issue")
		utils.FailMsg(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token})
}

// LoginUser checks a patient's credentials and issues a token.
func (h *Handler) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Stores.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.FailMsg(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Log.Error().Err(err).Msg("user login lookup")
		utils.FailMsg(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		utils.FailMsg(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(h.Cfg.JWTSecret, user.ID.Hex(), utils.RoleUser)
	if err != nil {
		h.Log.Error().Err(err).Msg("user token issue")
		utils.FailMsg(c, http.StatusInternalServerError, "Could not issue token")
		return
	}

	utils.OK(c, gin.H{"token": token})
}

// GetProfile returns the authenticated user's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := h.Stores.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.FailMsg(c, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error().Err(err).Msg("profile lookup")
		utils.FailMsg(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	utils.OK(c, gin.H{"userData": user})
}

// BookAppointment reserves a slot and creates the appointment for the
// authenticated user.
func (h *Handler) BookAppointment(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req struct {
		DocID    string `json:"docId"`
		SlotDate string `json:"slotDate"`
		SlotTime string `json:"slotTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SlotDate == "" || req.SlotTime == "" {
		utils.FailMsg(c, http.StatusBadRequest, "Missing Details")
		return
	}
	docID, err := primitive.ObjectIDFromHex(req.DocID)
	if err != nil {
		utils.FailMsg(c, http.StatusBadRequest, "Invalid doctor id")
		return
	}

	appointment, err := h.Svc.Book(c.Request.Context(), uid, docID, req.SlotDate, req.SlotTime)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Appointment Booked",
		"appointment": appointment,
	})
}

// UserAppointments lists the authenticated user's appointments.
func (h *Handler) UserAppointments(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	appointments, err := h.Svc.AppointmentsForUser(c.Request.Context(), uid)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"appointments": appointments})
}

// CancelAppointmentUser cancels one of the user's own appointments.
func (h *Handler) CancelAppointmentUser(c *gin.Context) {
	uid, ok := userID(c)
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

	if err := h.Svc.CancelOwned(c.Request.Context(), id, uid, utils.RoleUser); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"message": "Appointment Cancelled"})
}
