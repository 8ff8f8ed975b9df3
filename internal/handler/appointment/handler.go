package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	appointmentService "github.com/carelink/booking-api/internal/service/appointment"
	directoryService "github.com/carelink/booking-api/internal/service/directory"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

type Handler struct {
	service   *appointmentService.Service
	directory *directoryService.Service
}

func NewHandler(service *appointmentService.Service, directory *directoryService.Service) *Handler {
	return &Handler{service: service, directory: directory}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AuthMiddleware) {
	appointments := rg.Group("/appointments")
	{
		// Public directory and availability reads.
		appointments.GET("/specializations", h.ListSpecializations)
		appointments.GET("/hospitals", h.ListHospitals)
		appointments.GET("/hospitals/specialization/:specialization", h.ListHospitalsBySpecialization)
		appointments.GET("/hospitals/:hospitalId/specializations", h.ListHospitalSpecializations)
		appointments.GET("/doctors", h.ListDoctors)
		appointments.GET("/timeslots", h.AvailableSlots)

		// Owner-scoped booking operations.
		patientScoped := appointments.Group("/:patientId")
		patientScoped.Use(guard.Authenticate(model.RolePatient), guard.RequireOwner("patientId"))
		patientScoped.POST("/book", h.Book)
		patientScoped.GET("/appointments", h.ListForPatient)
	}
}

func (h *Handler) ListSpecializations(c *gin.Context) {
	specializations, err := h.directory.AllSpecializations(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"specializations": specializations})
}

func (h *Handler) ListHospitals(c *gin.Context) {
	hospitals, err := h.directory.AllHospitals(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"hospitals": hospitals})
}

func (h *Handler) ListHospitalsBySpecialization(c *gin.Context) {
	hospitals, err := h.directory.HospitalsBySpecialization(c.Request.Context(), c.Param("specialization"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"hospitals": hospitals})
}

func (h *Handler) ListHospitalSpecializations(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Param("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}

	specializations, err := h.directory.SpecializationsByHospital(c.Request.Context(), hospitalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"specializations": specializations})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Query("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}
	specialization := c.Query("specialization")
	if specialization == "" {
		httputil.RespondWithError(c, errors.InvalidRequest("specialization is required"))
		return
	}

	doctors, err := h.directory.DoctorsByHospitalAndSpecialization(c.Request.Context(), hospitalID, specialization)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"doctors": doctors})
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	hospitalID, err := uuid.Parse(c.Query("hospitalId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid hospital ID"))
		return
	}
	doctorID, err := uuid.Parse(c.Query("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid doctor ID"))
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), hospitalID, doctorID, c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"availableSlots": slots})
}

func (h *Handler) Book(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid patient ID"))
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	appointmentID, err := h.service.Book(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{
		"message":       "Appointment request sent successfully",
		"appointmentId": appointmentID,
	})
}

func (h *Handler) ListForPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid patient ID"))
		return
	}

	appointments, err := h.service.ListForPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"appointments": appointments})
}
