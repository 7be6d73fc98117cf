package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/config"
	"github.com/imanrao90/doctor-appointment-backend/internal/handlers"
	"github.com/imanrao90/doctor-appointment-backend/internal/middleware"
	"github.com/imanrao90/doctor-appointment-backend/internal/models"
	"github.com/imanrao90/doctor-appointment-backend/internal/scheduling"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
	"github.com/imanrao90/doctor-appointment-backend/internal/utils"
)

type stubImages struct{}

func (stubImages) Save(context.Context, multipart.File, *multipart.FileHeader) (string, error) {
	return "/uploads/stub.jpg", nil
}

func newTestServer(t *testing.T) (*gin.Engine, *store.Stores, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		AdminEmail:    "admin@clinic.com",
		AdminPassword: "adminpass123",
	}
	stores := store.NewMemory()
	svc := scheduling.New(stores, zerolog.Nop())
	h := handlers.NewHandler(svc, stores, stubImages{}, cfg, zerolog.Nop())

	r := gin.New()
	handlers.RegisterRoutes(r, h, middleware.NewRateLimiter(1000, 1000))
	return r, stores, cfg
}

func doJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func adminToken(t *testing.T, r *gin.Engine, cfg *config.Config) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/admin/login", gin.H{
		"email":    cfg.AdminEmail,
		"password": cfg.AdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := envelope(t, w)
	require.Equal(t, true, body["success"])
	return body["token"].(string)
}

func registerUser(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/user/register", gin.H{
		"name":     "Pat",
		"email":    "pat@test.com",
		"password": "longenough",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return envelope(t, w)["token"].(string)
}

func seedDoctor(t *testing.T, stores *store.Stores) primitive.ObjectID {
	t.Helper()
	id, err := stores.Doctors.Insert(context.Background(), &models.Doctor{
		Name:       "Dr. Test",
		Email:      "dr@test.com",
		Speciality: "General physician",
		Fees:       50,
		Available:  true,
	})
	require.NoError(t, err)
	return id
}

func TestAdminLogin(t *testing.T) {
	r, _, cfg := newTestServer(t)

	token := adminToken(t, r, cfg)
	assert.NotEmpty(t, token)

	w := doJSON(r, http.MethodPost, "/api/admin/login", gin.H{
		"email":    cfg.AdminEmail,
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := envelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestAdminGuardRejectsMissingToken(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/admin/dashboard", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := envelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not Authorized login again", body["message"])
}

func TestAdminGuardRejectsUserToken(t *testing.T) {
	r, _, cfg := newTestServer(t)

	userTok, err := utils.GenerateJWT(cfg.JWTSecret, primitive.NewObjectID().Hex(), utils.RoleUser)
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/admin/dashboard", nil, map[string]string{"atoken": userTok})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddDoctorMultipart(t *testing.T) {
	r, stores, cfg := newTestServer(t)
	token := adminToken(t, r, cfg)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":       "Dr. Upload",
		"email":      "upload@clinic.com",
		"password":   "longenough",
		"speciality": "Neurologist",
		"degree":     "MBBS",
		"experience": "2 Years",
		"about":      "About",
		"fees":       "75",
		"address":    `{"line1":"12 Main St","line2":""}`,
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not-a-real-jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/add-doctor", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("atoken", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, envelope(t, w)["success"])

	d, err := stores.Doctors.FindByEmail(context.Background(), "upload@clinic.com")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/stub.jpg", d.Image)
}

func TestAddDoctorMissingImage(t *testing.T) {
	r, _, cfg := newTestServer(t)
	token := adminToken(t, r, cfg)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Dr. NoImage"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/add-doctor", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("atoken", token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Image is required", envelope(t, w)["message"])
}

func TestBookAndCancelFlow(t *testing.T) {
	r, stores, _ := newTestServer(t)
	docID := seedDoctor(t, stores)
	token := registerUser(t, r)
	auth := map[string]string{"token": token}

	w := doJSON(r, http.MethodPost, "/api/user/book-appointment", gin.H{
		"docId":    docID.Hex(),
		"slotDate": "2024-05-01",
		"slotTime": "10:00",
	}, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := envelope(t, w)
	appointment := body["appointment"].(map[string]any)
	apptID := appointment["_id"].(string)

	// Rebooking the taken slot conflicts.
	w = doJSON(r, http.MethodPost, "/api/user/book-appointment", gin.H{
		"docId":    docID.Hex(),
		"slotDate": "2024-05-01",
		"slotTime": "10:00",
	}, auth)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Slot not available", envelope(t, w)["message"])

	w = doJSON(r, http.MethodPost, "/api/user/cancel-appointment", gin.H{
		"appointmentId": apptID,
	}, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Cancelling again conflicts.
	w = doJSON(r, http.MethodPost, "/api/user/cancel-appointment", gin.H{
		"appointmentId": apptID,
	}, auth)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Appointment already cancelled", envelope(t, w)["message"])
}

func TestAdminCancelAndDashboard(t *testing.T) {
	r, stores, cfg := newTestServer(t)
	docID := seedDoctor(t, stores)
	userTok := registerUser(t, r)
	atok := adminToken(t, r, cfg)

	w := doJSON(r, http.MethodPost, "/api/user/book-appointment", gin.H{
		"docId":    docID.Hex(),
		"slotDate": "2024-05-01",
		"slotTime": "11:00",
	}, map[string]string{"token": userTok})
	require.Equal(t, http.StatusCreated, w.Code)
	apptID := envelope(t, w)["appointment"].(map[string]any)["_id"].(string)

	w = doJSON(r, http.MethodPost, "/api/admin/cancel-appointment", gin.H{
		"appointmentId": apptID,
	}, map[string]string{"atoken": atok})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/admin/dashboard", nil, map[string]string{"atoken": atok})
	require.Equal(t, http.StatusOK, w.Code)
	dash := envelope(t, w)["dashData"].(map[string]any)
	assert.Equal(t, float64(1), dash["doctors"])
	assert.Equal(t, float64(1), dash["appointments"])
	assert.Equal(t, float64(1), dash["patients"])

	w = doJSON(r, http.MethodPost, "/api/admin/cancel-appointment", gin.H{
		"appointmentId": primitive.NewObjectID().Hex(),
	}, map[string]string{"atoken": atok})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDoctorListRedacts(t *testing.T) {
	r, stores, _ := newTestServer(t)
	seedDoctor(t, stores)

	w := doJSON(r, http.MethodGet, "/api/doctor/list", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	doctors := envelope(t, w)["doctors"].([]any)
	require.Len(t, doctors, 1)
	d := doctors[0].(map[string]any)
	assert.Empty(t, d["email"])
	_, hasPassword := d["password"]
	assert.False(t, hasPassword)
}

func TestUserCannotCancelForeignAppointment(t *testing.T) {
	r, stores, _ := newTestServer(t)
	docID := seedDoctor(t, stores)
	ownerTok := registerUser(t, r)

	w := doJSON(r, http.MethodPost, "/api/user/book-appointment", gin.H{
		"docId":    docID.Hex(),
		"slotDate": "2024-05-01",
		"slotTime": "12:00",
	}, map[string]string{"token": ownerTok})
	require.Equal(t, http.StatusCreated, w.Code)
	apptID := envelope(t, w)["appointment"].(map[string]any)["_id"].(string)

	w = doJSON(r, http.MethodPost, "/api/user/register", gin.H{
		"name":     "Other",
		"email":    "other@test.com",
		"password": "longenough",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	otherTok := envelope(t, w)["token"].(string)

	w = doJSON(r, http.MethodPost, "/api/user/cancel-appointment", gin.H{
		"appointmentId": apptID,
	}, map[string]string{"token": otherTok})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
