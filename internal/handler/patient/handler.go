package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	authService "github.com/carelink/booking-api/internal/service/auth"
	recordService "github.com/carelink/booking-api/internal/service/record"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

type Handler struct {
	auth    *authService.Service
	records *recordService.Service
}

func NewHandler(auth *authService.Service, records *recordService.Service) *Handler {
	return &Handler{auth: auth, records: records}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, guard *middleware.AuthMiddleware) {
	patients := rg.Group("/patients")
	{
		patients.POST("/register", h.Register)
		patients.POST("/login", h.Login)

		owned := patients.Group("/:patientId")
		owned.Use(guard.Authenticate(model.RolePatient), guard.RequireOwner("patientId"))
		owned.GET("", h.Profile)
		owned.GET("/health-records", h.ListHealthRecords)
		owned.POST("/health-records", h.AddHealthRecord)
		owned.DELETE("/health-records/:recordId", h.DeleteHealthRecord)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	patientID, err := h.auth.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{
		"message":   "Patient registered successfully",
		"patientId": patientID,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	token, err := h.auth.LoginPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, token)
}

func (h *Handler) Profile(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid patient ID"))
		return
	}

	patient, err := h.records.Profile(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"patient": patient})
}

func (h *Handler) ListHealthRecords(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid patient ID"))
		return
	}

	records, err := h.records.ListHealthRecords(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"healthRecords": records})
}

func (h *Handler) AddHealthRecord(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid patient ID"))
		return
	}

	var req model.AddHealthRecordRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest(err.Error()))
		return
	}

	// The report file is optional.
	file, err := c.FormFile("report")
	if err != nil && err != http.ErrMissingFile {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid report upload"))
		return
	}

	record, err := h.records.AddHealthRecord(c.Request.Context(), patientID, &req, file)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, gin.H{
		"message":      "Health record added successfully",
		"healthRecord": record,
	})
}

func (h *Handler) DeleteHealthRecord(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid patient ID"))
		return
	}
	recordID, err := uuid.Parse(c.Param("recordId"))
	if err != nil {
		httputil.RespondWithError(c, errors.InvalidRequest("invalid record ID"))
		return
	}

	if err := h.records.DeleteHealthRecord(c.Request.Context(), patientID, recordID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Health record deleted successfully"})
}
