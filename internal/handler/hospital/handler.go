package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	appointmentService "github.com/carelink/booking-api/internal/service/appointment"
	authService "github.com/carelink/booking-api/internal/service/auth"
	hospitalService "github.com/carelink/booking-api/internal/service/hospital"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

type Handler struct {
	auth         *authService.Service
	appointments *appointmentService.Service
	staffing     *hospitalService.Service
}

func NewHandler(auth *authService.Service, appointments *appointmentService.Service, staffing *hospitalService.Service) *Handler {
	return &Handler{auth: auth, appointments: appointments, staffing: staffing}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AuthMiddleware) {
	hospitals := rg.Group("/hospitals")
	{
		hospitals.POST("/register", h.Register)
		hospitals.POST("/login", h.Login)

		owned := hospitals.Group("/:hospitalId")
		owned.Use(guard.Authenticate(model.RoleHospital), guard.RequireOwner("hospitalId"))
		owned.GET("/pending-appointments", h.PendingAppointments)
		owned.PUT("/appointments/:appointmentId/status", h.UpdateAppointmentStatus)
		owned.POST("/doctors", h.AddDoctor)
		owned.GET("/doctors", h.ListDoctors)
		owned.DELETE("/doctors/:doctorId", h.DeleteDoctor)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	hospitalID, err := h.auth.RegisterHospital(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{
		"message":    "Hospital registered successfully",
		"hospitalId": hospitalID,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	token, err := h.auth.LoginHospital(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, token)
}

// PendingAppointments lists every booking request awaiting this
// hospital's decision.
func (h *Handler) PendingAppointments(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}

	appointments, err := h.appointments.ListForHospital(c.Request.Context(), hospitalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointments": appointments})
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}
	appointmentID, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid appointment ID"))
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	if err := h.appointments.UpdateStatus(c.Request.Context(), hospitalID, appointmentID, req.Status); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Appointment status updated successfully"})
}

func (h *Handler) AddDoctor(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}

	var req model.AddDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	doctorID, err := h.staffing.AddDoctor(c.Request.Context(), hospitalID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{
		"message":  "Doctor added successfully",
		"doctorId": doctorID,
	})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}

	doctors, err := h.staffing.ListDoctors(c.Request.Context(), hospitalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"doctors": doctors})
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid doctor ID"))
		return
	}

	if err := h.staffing.DeleteDoctor(c.Request.Context(), hospitalID, doctorID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Doctor removed successfully"})
}
