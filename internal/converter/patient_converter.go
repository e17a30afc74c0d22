package converter

import (
	"fmt"
	"strings"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/store"
)

// ChartAuthor is how a role signs chart notes
func ChartAuthor(role entity.Role) string {
	if role == entity.RoleAdmin {
		return "System Admin"
	}
	return "Staff Member"
}

func RegisterPatientRequestToEntity(req *dto.RegisterPatientRequest, today string) entity.Patient {
	return entity.Patient{
		Name:      req.Name,
		DOB:       req.DOB,
		Contact:   req.Contact,
		History:   req.History,
		LastVisit: today,
		Status:    entity.PatientStatusWaiting,
		Notes:     []entity.PatientNote{},
		Vitals:    entity.PlaceholderVitals(),
	}
}

// VitalsNote renders the chart line for the vitals that were provided.
// ok is false when no vital was given.
func VitalsNote(bp, heartRate, temp string) (string, bool) {
	var parts []string
	if bp != "" {
		parts = append(parts, "BP: "+bp)
	}
	if heartRate != "" {
		parts = append(parts, fmt.Sprintf("HR: %s bpm", heartRate))
	}
	if temp != "" {
		parts = append(parts, fmt.Sprintf("Temp: %s°C", temp))
	}
	if len(parts) == 0 {
		return "", false
	}
	return "Vitals Check: " + strings.Join(parts, ", "), true
}

// UpdateChartRequestToChanges turns one chart save into store changes.
//
// New notes end up newest first as vitals, free text note, diagnosis.
// Only the vitals that were provided replace the current readings.
func UpdateChartRequestToChanges(req *dto.UpdateChartRequest, author, today string) store.PatientChanges {
	changes := store.PatientChanges{
		Name:      req.Name,
		DOB:       req.DOB,
		Contact:   req.Contact,
		History:   req.History,
		LastVisit: &today,
	}

	note := func(text string) entity.PatientNote {
		return entity.PatientNote{Date: today, Text: text, Author: author}
	}

	if text, ok := VitalsNote(req.BP, req.HeartRate, req.Temp); ok {
		changes.BP = nonEmpty(req.BP)
		changes.HeartRate = nonEmpty(req.HeartRate)
		changes.Temp = nonEmpty(req.Temp)
		changes.PrependNotes = append(changes.PrependNotes, note(text))
	}
	if req.Note != "" {
		changes.PrependNotes = append(changes.PrependNotes, note(req.Note))
	}
	if req.Diagnosis != "" {
		changes.PrependNotes = append(changes.PrependNotes, note("DIAGNOSIS: "+req.Diagnosis))
	}

	return changes
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
