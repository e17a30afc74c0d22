package store

import (
	"fmt"
	"slices"

	"mediaccess/internal/domain/entity"
)

// PatientChanges holds a partial chart update. Nil fields are left unchanged.
// Each vital sign is merged on its own so concurrent saves of different
// readings do not overwrite each other. PrependNotes are added to the front of the chart in the given order, so the
// first element becomes the newest note. Existing notes cannot be replaced.
type PatientChanges struct {
	Name         *string
	DOB          *string
	Contact      *string
	History      *string
	LastVisit    *string
	Status       *entity.PatientStatus
	BP           *string
	HeartRate    *string
	Temp         *string
	PrependNotes []entity.PatientNote
}

func (c PatientChanges) validate(current entity.Patient) error {
	if c.Status == nil {
		return nil
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: patient status %q", ErrInvalidValue, *c.Status)
	}
	if !current.Status.CanTransitionTo(*c.Status) {
		return fmt.Errorf("%w: patient %s cannot move from %s to %s", ErrInvalidTransition, current.ID, current.Status, *c.Status)
	}
	return nil
}

func (c PatientChanges) apply(p *entity.Patient) {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.DOB != nil {
		p.DOB = *c.DOB
	}
	if c.Contact != nil {
		p.Contact = *c.Contact
	}
	if c.History != nil {
		p.History = *c.History
	}
	if c.LastVisit != nil {
		p.LastVisit = *c.LastVisit
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
	if c.BP != nil {
		p.Vitals.BP = *c.BP
	}
	if c.HeartRate != nil {
		p.Vitals.HeartRate = *c.HeartRate
	}
	if c.Temp != nil {
		p.Vitals.Temp = *c.Temp
	}
	if len(c.PrependNotes) > 0 {
		p.Notes = prepend(p.Notes, c.PrependNotes...)
	}
}

// AddPatient registers a patient at the head of the list.
// An empty id is replaced with a generated one and an empty status defaults to Waiting.
func (s *Store) AddPatient(p entity.Patient) (entity.Patient, error) {
	if p.Status == "" {
		p.Status = entity.PatientStatusWaiting
	}
	if !p.Status.Valid() {
		return entity.Patient{}, fmt.Errorf("%w: patient status %q", ErrInvalidValue, p.Status)
	}
	p = p.Clone()

	err := s.mutate("AddPatient", func(t *tx) error {
		if p.ID == "" {
			p.ID = t.s.newID()
		}
		if t.s.patientIndex(p.ID) >= 0 {
			return fmt.Errorf("%w: patient %s", ErrDuplicateID, p.ID)
		}
		t.s.patients = prepend(t.s.patients, p)
		t.log(entity.LogModuleDB, fmt.Sprintf("Patient record created: %s (Encrypted)", p.ID), entity.LogStatusOK)
		return nil
	})
	if err != nil {
		return entity.Patient{}, err
	}
	return p.Clone(), nil
}

// UpdatePatient merges changes into the patient chart with the given id
func (s *Store) UpdatePatient(id string, changes PatientChanges) (entity.Patient, error) {
	var updated entity.Patient
	err := s.mutate("UpdatePatient", func(t *tx) error {
		i := t.s.patientIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: patient %s", ErrNotFound, id)
		}
		if err := changes.validate(t.s.patients[i]); err != nil {
			return err
		}
		changes.apply(&t.s.patients[i])
		updated = t.s.patients[i].Clone()
		return nil
	})
	return updated, err
}

// AddPatientNote prepends a single note to a patient's chart
func (s *Store) AddPatientNote(id string, note entity.PatientNote) (entity.Patient, error) {
	return s.UpdatePatient(id, PatientChanges{PrependNotes: []entity.PatientNote{note}})
}

// AdvancePatient moves a patient one step along the care flow
func (s *Store) AdvancePatient(id string) (entity.Patient, error) {
	var updated entity.Patient
	err := s.mutate("AdvancePatient", func(t *tx) error {
		i := t.s.patientIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: patient %s", ErrNotFound, id)
		}
		next, ok := t.s.patients[i].Status.Next()
		if !ok {
			return fmt.Errorf("%w: patient %s is already %s", ErrInvalidTransition, id, t.s.patients[i].Status)
		}
		t.s.patients[i].Status = next
		updated = t.s.patients[i].Clone()
		return nil
	})
	return updated, err
}

// Patients returns all patients newest first
func (s *Store) Patients() []entity.Patient {
	var out []entity.Patient
	s.read(func() {
		out = cloneAll(s.patients, entity.Patient.Clone)
	})
	return out
}

// Patient returns one patient by id
func (s *Store) Patient(id string) (entity.Patient, error) {
	var (
		p  entity.Patient
		ok bool
	)
	s.read(func() {
		if i := s.patientIndex(id); i >= 0 {
			p, ok = s.patients[i].Clone(), true
		}
	})
	if !ok {
		return entity.Patient{}, fmt.Errorf("%w: patient %s", ErrNotFound, id)
	}
	return p, nil
}

func (s *Store) patientIndex(id string) int {
	return slices.IndexFunc(s.patients, func(p entity.Patient) bool { return p.ID == id })
}
