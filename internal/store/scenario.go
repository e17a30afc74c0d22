package store

import (
	"fmt"

	"mediaccess/internal/domain/entity"
)

// SurgeSize is the number of patients admitted by one surge
const SurgeSize = 5

var surgeNames = [SurgeSize]string{"Alex Mercer", "Diana Prince", "Bruce Banner", "Clark Kent", "Wade Wilson"}

// TriggerCyberAttack raises the security level to Critical, queues a
// critical mitigation task and raises an alert. It fails with
// ErrInvalidTransition when the level is already Critical.
func (s *Store) TriggerCyberAttack() (entity.AdminTask, error) {
	var task entity.AdminTask
	err := s.mutate("TriggerCyberAttack", func(t *tx) error {
		if t.s.securityLevel != entity.SecurityLevelLow {
			return fmt.Errorf("%w: security level is already %s", ErrInvalidTransition, t.s.securityLevel)
		}

		var err error
		task, err = t.insertTask(entity.AdminTask{
			Type:      entity.TaskTypeSoftware,
			Title:     "MITIGATE DDOS ATTACK",
			Requester: "AUTO-DEFENSE",
			SLARating: entity.SLACritical,
			Status:    entity.TaskStatusPending,
		})
		if err != nil {
			return err
		}
		t.s.securityLevel = entity.SecurityLevelCritical

		t.notify(entity.NotificationError, "SECURITY ALERT: DDoS DETECTED",
			"High-volume traffic detected on Auth Gateway. Immediate mitigation required.")
		t.log(entity.LogModuleSec, "DDoS Attack Signature detected on Port 443", entity.LogStatusErr)
		t.log(entity.LogModuleSystem, "Automatic Lockdown Protocols Initiated", entity.LogStatusWarn)
		return nil
	})
	return task, err
}

// ResolveSecurityEvent returns the security level to Low. The mitigation
// task stays in the queue.
func (s *Store) ResolveSecurityEvent() error {
	return s.mutate("ResolveSecurityEvent", func(t *tx) error {
		if t.s.securityLevel != entity.SecurityLevelCritical {
			return fmt.Errorf("%w: no active security event", ErrInvalidTransition)
		}
		t.s.securityLevel = entity.SecurityLevelLow

		t.notify(entity.NotificationSuccess, "Threat Resolved",
			"Security threat neutralized. Systems returning to normal.")
		t.log(entity.LogModuleSec, "Threat Neutralized. Firewall rules updated.", entity.LogStatusOK)
		t.log(entity.LogModuleSystem, "Returning to Normal Operational State.", entity.LogStatusOK)
		return nil
	})
}

// TriggerPatientSurge admits five emergency patients into the Waiting queue.
// The batch is placed at the head of the list in admission order.
func (s *Store) TriggerPatientSurge() ([]entity.Patient, error) {
	batch := make([]entity.Patient, 0, SurgeSize)
	err := s.mutate("TriggerPatientSurge", func(t *tx) error {
		today := t.s.clock().Format(entity.DateLayout)
		for _, name := range surgeNames {
			batch = append(batch, entity.Patient{
				ID:        t.s.newID(),
				Name:      name,
				DOB:       "1990-01-01",
				Contact:   "555-SURGE",
				History:   "Emergency Admission",
				LastVisit: today,
				Status:    entity.PatientStatusWaiting,
				Notes:     []entity.PatientNote{},
				Vitals:    entity.PlaceholderVitals(),
			})
		}
		for _, p := range batch {
			if t.s.patientIndex(p.ID) >= 0 {
				return fmt.Errorf("%w: patient %s", ErrDuplicateID, p.ID)
			}
		}
		t.s.patients = prepend(t.s.patients, cloneAll(batch, entity.Patient.Clone)...)

		t.notify(entity.NotificationWarning, "Capacity Warning",
			fmt.Sprintf("Sudden influx of %d patients in Triage Queue. Wait times exceeding 30 mins.", SurgeSize))
		t.log(entity.LogModuleAPI, fmt.Sprintf("Batch ingest: %d emergency patient records", SurgeSize), entity.LogStatusOK)
		t.log(entity.LogModuleSystem, "Triage Queue Capacity > 80%", entity.LogStatusWarn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// RunFullAudit files the board summary and the infrastructure audit log.
// Both reports go through the regular report side effects.
func (s *Store) RunFullAudit() ([]entity.SystemReport, error) {
	var out []entity.SystemReport
	err := s.mutate("RunFullAudit", func(t *tx) error {
		reports := []entity.SystemReport{
			{
				ID:          t.s.newID(),
				Title:       "Board Executive Summary Q4 (Automated)",
				Type:        entity.ReportTypeStrategy,
				Size:        "1.2 MB",
				GeneratedBy: "Audit Bot",
			},
			{
				ID:          t.s.newID(),
				Title:       "Technical Infrastructure Audit Log",
				Type:        entity.ReportTypeAudit,
				Size:        "4.5 MB",
				GeneratedBy: "System",
			},
		}
		if reports[0].ID == reports[1].ID {
			return fmt.Errorf("%w: report %s", ErrDuplicateID, reports[0].ID)
		}
		for _, r := range reports {
			if t.s.reportIndex(r.ID) >= 0 {
				return fmt.Errorf("%w: report %s", ErrDuplicateID, r.ID)
			}
		}
		for _, r := range reports {
			inserted, err := t.insertReport(r)
			if err != nil {
				return err
			}
			out = append(out, inserted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
