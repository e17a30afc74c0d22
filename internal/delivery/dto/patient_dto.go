package dto

import "mediaccess/internal/domain/entity"

type RegisterPatientRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	DOB     string `json:"dob" validate:"required,datetime=2006-01-02"`
	Contact string `json:"contact" validate:"required"`
	History string `json:"history"`
}

// UpdateChartRequest is one save of the patient chart. Profile fields replace
// the current values when present; note, diagnosis and vitals are optional.
type UpdateChartRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	DOB       *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Contact   *string `json:"contact"`
	History   *string `json:"history"`
	Note      string  `json:"note" validate:"max=5000"`
	Diagnosis string  `json:"diagnosis" validate:"max=500"`
	BP        string  `json:"bp" validate:"max=16"`
	HeartRate string  `json:"heart_rate" validate:"max=8"`
	Temp      string  `json:"temp" validate:"max=8"`
}

type DictationRequest struct {
	Draft      string `json:"draft"`
	Transcript string `json:"transcript"`
}

type DictationResponse struct {
	Note      string `json:"note"`
	Simulated bool   `json:"simulated"`
}

type PatientListResponse struct {
	Patients     []entity.Patient `json:"patients"`
	Total        int              `json:"total"`
	WaitingCount int              `json:"waiting_count"`
}
