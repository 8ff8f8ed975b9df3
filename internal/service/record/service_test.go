package record

import (
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/pkg/errors"
)

// approvedAppointments implements only the correlation read the record
// service needs; every other appointment method is unused here.
type approvedAppointments struct {
	doctorID uuid.UUID
	visits   []visit
}

type visit struct {
	patientID uuid.UUID
	date      time.Time
}

func (r *approvedAppointments) ApprovedPatientIDs(_ context.Context, doctorID uuid.UUID, dayStart, dayEnd *time.Time) ([]uuid.UUID, error) {
	if doctorID != r.doctorID {
		return nil, nil
	}
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, v := range r.visits {
		if dayStart != nil && (v.date.Before(*dayStart) || v.date.After(*dayEnd)) {
			continue
		}
		if !seen[v.patientID] {
			seen[v.patientID] = true
			ids = append(ids, v.patientID)
		}
	}
	return ids, nil
}

func (r *approvedAppointments) Create(context.Context, *model.Appointment) error { return nil }
func (r *approvedAppointments) Get(context.Context, uuid.UUID) (*model.Appointment, error) {
	return nil, sql.ErrNoRows
}
func (r *approvedAppointments) BookedSlots(context.Context, uuid.UUID, uuid.UUID, time.Time) ([]string, error) {
	return nil, nil
}
func (r *approvedAppointments) SlotTaken(context.Context, uuid.UUID, uuid.UUID, time.Time, string) (bool, error) {
	return false, nil
}
func (r *approvedAppointments) UpdateStatus(context.Context, uuid.UUID, model.AppointmentStatus) (bool, error) {
	return false, nil
}
func (r *approvedAppointments) ListForPatient(context.Context, uuid.UUID) ([]*model.PatientAppointmentView, error) {
	return nil, nil
}
func (r *approvedAppointments) ListForHospital(context.Context, uuid.UUID) ([]*model.HospitalAppointmentView, error) {
	return nil, nil
}
func (r *approvedAppointments) ListApprovedForDoctor(context.Context, uuid.UUID, *time.Time, *time.Time) ([]*model.DoctorAppointmentView, error) {
	return nil, nil
}

type fakePatientRepo struct {
	patients   map[uuid.UUID]*model.Patient
	records    map[uuid.UUID][]*model.HealthRecord
	failInsert bool
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients: make(map[uuid.UUID]*model.Patient),
		records:  make(map[uuid.UUID][]*model.HealthRecord),
	}
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (r *fakePatientRepo) GetByEmail(_ context.Context, email string) (*model.Patient, error) {
	for _, p := range r.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakePatientRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, id := range ids {
		if p, ok := r.patients[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePatientRepo) AddHealthRecord(_ context.Context, record *model.HealthRecord) error {
	if r.failInsert {
		return fmt.Errorf("insert failed")
	}
	record.ID = uuid.New()
	record.Date = time.Now()
	r.records[record.PatientID] = append(r.records[record.PatientID], record)
	return nil
}

func (r *fakePatientRepo) ListHealthRecords(_ context.Context, patientID uuid.UUID) ([]*model.HealthRecord, error) {
	return r.records[patientID], nil
}

func (r *fakePatientRepo) GetHealthRecord(_ context.Context, patientID, recordID uuid.UUID) (*model.HealthRecord, error) {
	for _, rec := range r.records[patientID] {
		if rec.ID == recordID {
			return rec, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakePatientRepo) DeleteHealthRecord(_ context.Context, patientID, recordID uuid.UUID) error {
	kept := r.records[patientID][:0]
	for _, rec := range r.records[patientID] {
		if rec.ID != recordID {
			kept = append(kept, rec)
		}
	}
	r.records[patientID] = kept
	return nil
}

type fakeFileStore struct {
	saved   []string
	removed []string
}

func (s *fakeFileStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".jpeg" && ext != ".jpg" && ext != ".png" {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}
	path := "uploads/" + file.Filename
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeFileStore) Remove(path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func (s *fakeFileStore) URL(path string) string {
	return "http://localhost:8080/" + path
}

func addPatient(repo *fakePatientRepo, name string) uuid.UUID {
	p := &model.Patient{FullName: name, Email: name + "@example.com"}
	_ = repo.Create(context.Background(), p)
	return p.ID
}

func strPtr(s string) *string { return &s }

func TestPatientRecordsForDoctorDeduplicates(t *testing.T) {
	doctorID := uuid.New()
	patients := newFakePatientRepo()
	patientID := addPatient(patients, "ravi")

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	appointments := &approvedAppointments{doctorID: doctorID, visits: []visit{
		{patientID: patientID, date: day},
		{patientID: patientID, date: day.AddDate(0, 0, 7)},
	}}

	svc := NewService(appointments, patients, &fakeFileStore{}, nil)
	result, err := svc.PatientRecordsForDoctor(context.Background(), doctorID, "")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "ravi", result[0].Username)
}

func TestPatientRecordsProjection(t *testing.T) {
	doctorID := uuid.New()
	patients := newFakePatientRepo()
	patientID := addPatient(patients, "meera")
	patients.records[patientID] = []*model.HealthRecord{
		{
			ID:                 uuid.New(),
			PatientID:          patientID,
			MedicalCondition:   "Hypertension",
			MonthsSince:        6,
			CurrentMedications: "Amlodipine, Losartan, Aspirin",
			FilePath:           strPtr("uploads/report.pdf"),
		},
		{
			ID:                 uuid.New(),
			PatientID:          patientID,
			MedicalCondition:   "Diabetes",
			MonthsSince:        12,
			CurrentMedications: "Metformin",
		},
	}

	appointments := &approvedAppointments{doctorID: doctorID, visits: []visit{
		{patientID: patientID, date: time.Now()},
	}}

	svc := NewService(appointments, patients, &fakeFileStore{}, nil)
	result, err := svc.PatientRecordsForDoctor(context.Background(), doctorID, "")
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0].HealthRecords, 2)

	withFile := result[0].HealthRecords[0]
	assert.Equal(t, []string{"Amlodipine", "Losartan", "Aspirin"}, withFile.Medications)
	assert.Equal(t, "http://localhost:8080/uploads/report.pdf", withFile.Report)

	withoutFile := result[0].HealthRecords[1]
	assert.Equal(t, []string{"Metformin"}, withoutFile.Medications)
	assert.Equal(t, model.NoReportMarker, withoutFile.Report)
}

func TestPatientRecordsForDoctorEmpty(t *testing.T) {
	svc := NewService(&approvedAppointments{doctorID: uuid.New()}, newFakePatientRepo(), &fakeFileStore{}, nil)

	result, err := svc.PatientRecordsForDoctor(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestPatientRecordsForDoctorDayFilter(t *testing.T) {
	doctorID := uuid.New()
	patients := newFakePatientRepo()
	onDay := addPatient(patients, "on-day")
	offDay := addPatient(patients, "off-day")

	appointments := &approvedAppointments{doctorID: doctorID, visits: []visit{
		{patientID: onDay, date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		{patientID: offDay, date: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)},
	}}

	svc := NewService(appointments, patients, &fakeFileStore{}, nil)
	result, err := svc.PatientRecordsForDoctor(context.Background(), doctorID, "2026-09-15")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "on-day", result[0].Username)

	_, err = svc.PatientRecordsForDoctor(context.Background(), doctorID, "15/09/2026")
	assert.True(t, errors.Is(err, errors.KindInvalidRequest))
}

func TestAddHealthRecordWithoutFile(t *testing.T) {
	patients := newFakePatientRepo()
	patientID := addPatient(patients, "anil")
	svc := NewService(&approvedAppointments{}, patients, &fakeFileStore{}, nil)

	resp, err := svc.AddHealthRecord(context.Background(), patientID, &model.AddHealthRecordRequest{
		MedicalCondition:   "Asthma",
		MonthsSince:        3,
		CurrentMedications: "Salbutamol",
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.FilePath)

	records, err := svc.ListHealthRecords(context.Background(), patientID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAddHealthRecordRejectsBadFileType(t *testing.T) {
	patients := newFakePatientRepo()
	patientID := addPatient(patients, "sana")
	svc := NewService(&approvedAppointments{}, patients, &fakeFileStore{}, nil)

	_, err := svc.AddHealthRecord(context.Background(), patientID, &model.AddHealthRecordRequest{
		MedicalCondition:   "Migraine",
		MonthsSince:        1,
		CurrentMedications: "Sumatriptan",
	}, &multipart.FileHeader{Filename: "report.exe"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindInvalidRequest))
}

func TestAddHealthRecordCleansUpOrphanedFile(t *testing.T) {
	patients := newFakePatientRepo()
	patientID := addPatient(patients, "vikram")
	patients.failInsert = true

	files := &fakeFileStore{}
	svc := NewService(&approvedAppointments{}, patients, files, nil)

	_, err := svc.AddHealthRecord(context.Background(), patientID, &model.AddHealthRecordRequest{
		MedicalCondition:   "Arthritis",
		MonthsSince:        24,
		CurrentMedications: "Ibuprofen",
	}, &multipart.FileHeader{Filename: "scan.png"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindStorageFailure))

	require.Len(t, files.saved, 1)
	assert.Equal(t, files.saved, files.removed)
}

func TestDeleteHealthRecordRemovesStoredFile(t *testing.T) {
	patients := newFakePatientRepo()
	patientID := addPatient(patients, "divya")
	recordID := uuid.New()
	patients.records[patientID] = []*model.HealthRecord{{
		ID:        recordID,
		PatientID: patientID,
		FilePath:  strPtr("uploads/old-report.pdf"),
	}}

	files := &fakeFileStore{}
	svc := NewService(&approvedAppointments{}, patients, files, nil)

	require.NoError(t, svc.DeleteHealthRecord(context.Background(), patientID, recordID))
	assert.Equal(t, []string{"uploads/old-report.pdf"}, files.removed)
	assert.Empty(t, patients.records[patientID])
}

func TestHealthRecordsUnknownPatient(t *testing.T) {
	svc := NewService(&approvedAppointments{}, newFakePatientRepo(), &fakeFileStore{}, nil)

	_, err := svc.ListHealthRecords(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, errors.KindNotFound))

	err = svc.DeleteHealthRecord(context.Background(), uuid.New(), uuid.New())
	assert.True(t, errors.Is(err, errors.KindNotFound))
}
