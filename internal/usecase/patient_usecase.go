package usecase

import (
	"context"
	"errors"
	"strings"

	"mediaccess/internal/converter"
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = errors.New("patient not found")

// SimulatedDictation is produced when no speech transcript is available
const SimulatedDictation = "[Simulated Voice]: Patient reports mild discomfort in left arm. Persistent cough for 3 days. Recommend X-Ray if symptoms persist."

type PatientUsecase interface {
	ListPatients(ctx context.Context, query string) *dto.PatientListResponse
	Board(ctx context.Context) []projection.BoardColumn
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*entity.Patient, error)
	UpdateChart(ctx context.Context, role entity.Role, id string, req *dto.UpdateChartRequest) (*entity.Patient, error)
	AdvancePatient(ctx context.Context, id string) (*entity.Patient, error)
	Dictate(ctx context.Context, id string, req *dto.DictationRequest) (*dto.DictationResponse, error)
}

type patientUsecase struct {
	store *store.Store
	log   *logrus.Logger
}

func NewPatientUsecase(s *store.Store, log *logrus.Logger) PatientUsecase {
	return &patientUsecase{store: s, log: log}
}

func (u *patientUsecase) ListPatients(ctx context.Context, query string) *dto.PatientListResponse {
	all := u.store.Patients()
	found := projection.SearchPatients(all, query)
	return &dto.PatientListResponse{
		Patients:     found,
		Total:        len(found),
		WaitingCount: projection.WaitingCount(all),
	}
}

func (u *patientUsecase) Board(ctx context.Context) []projection.BoardColumn {
	return projection.PatientBoard(u.store.Patients())
}

func (u *patientUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*entity.Patient, error) {
	p, err := u.store.AddPatient(converter.RegisterPatientRequestToEntity(req, u.store.Today()))
	if err != nil {
		u.log.Warnf("Failed to register patient: %+v", err)
		return nil, err
	}
	return &p, nil
}

func (u *patientUsecase) UpdateChart(ctx context.Context, role entity.Role, id string, req *dto.UpdateChartRequest) (*entity.Patient, error) {
	changes := converter.UpdateChartRequestToChanges(req, converter.ChartAuthor(role), u.store.Today())
	p, err := u.store.UpdatePatient(id, changes)
	if err != nil {
		return nil, u.patientError("update chart", err)
	}
	return &p, nil
}

func (u *patientUsecase) AdvancePatient(ctx context.Context, id string) (*entity.Patient, error) {
	p, err := u.store.AdvancePatient(id)
	if err != nil {
		return nil, u.patientError("advance patient", err)
	}
	return &p, nil
}

// Dictate appends speech to a draft note. Without a transcript the speech
// device is treated as unavailable and a scripted dictation is used.
func (u *patientUsecase) Dictate(ctx context.Context, id string, req *dto.DictationRequest) (*dto.DictationResponse, error) {
	if _, err := u.store.Patient(id); err != nil {
		return nil, u.patientError("get patient", err)
	}

	text := strings.TrimSpace(req.Transcript)
	simulated := text == ""
	if simulated {
		text = SimulatedDictation
	}

	note := req.Draft
	if note != "" && !strings.HasSuffix(note, " ") {
		note += " "
	}
	return &dto.DictationResponse{Note: note + text, Simulated: simulated}, nil
}

func (u *patientUsecase) patientError(what string, err error) error {
	u.log.Warnf("Failed to %s: %+v", what, err)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPatientNotFound
	}
	return err
}
