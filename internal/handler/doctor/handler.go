package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	appointmentService "github.com/carelink/booking-api/internal/service/appointment"
	authService "github.com/carelink/booking-api/internal/service/auth"
	recordService "github.com/carelink/booking-api/internal/service/record"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

type Handler struct {
	auth         *authService.Service
	appointments *appointmentService.Service
	records      *recordService.Service
}

func NewHandler(auth *authService.Service, appointments *appointmentService.Service, records *recordService.Service) *Handler {
	return &Handler{auth: auth, appointments: appointments, records: records}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AuthMiddleware) {
	doctors := rg.Group("/doctors")
	{
		doctors.POST("/login", h.Login)

		owned := doctors.Group("/:doctorId")
		owned.Use(guard.Authenticate(model.RoleDoctor), guard.RequireOwner("doctorId"))
		owned.GET("/appointments", h.Appointments)
		owned.GET("/patient-records", h.PatientRecords)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	token, err := h.auth.LoginDoctor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, token)
}

// Appointments lists the doctor's approved appointments, optionally
// filtered to a single calendar day via ?date=YYYY-MM-DD.
func (h *Handler) Appointments(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid doctor ID"))
		return
	}

	appointments, err := h.appointments.ListForDoctor(c.Request.Context(), doctorID, c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointments": appointments})
}

func (h *Handler) PatientRecords(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid doctor ID"))
		return
	}

	records, err := h.records.PatientRecordsForDoctor(c.Request.Context(), doctorID, c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"patients": records})
}
