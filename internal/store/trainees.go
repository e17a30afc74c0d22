package store

import (
	"fmt"
	"slices"

	"mediaccess/internal/domain/entity"
)

// TraineeChanges holds a partial update. Nil fields are left unchanged.
// AppendReviews are added after the existing reviews.
type TraineeChanges struct {
	AssignedSupervisor *string
	Performance        *int
	ClinicalHours      *int
	SupervisorRating   *float64
	JournalEntries     *int
	AppendReviews      []entity.TraineeReview
}

func (c TraineeChanges) validate() error {
	if c.Performance != nil && (*c.Performance < 0 || *c.Performance > 100) {
		return fmt.Errorf("%w: performance %d out of range 0-100", ErrInvalidValue, *c.Performance)
	}
	if c.SupervisorRating != nil && (*c.SupervisorRating < 1 || *c.SupervisorRating > 5) {
		return fmt.Errorf("%w: supervisor rating %.1f out of range 1-5", ErrInvalidValue, *c.SupervisorRating)
	}
	if c.ClinicalHours != nil && *c.ClinicalHours < 0 {
		return fmt.Errorf("%w: clinical hours %d", ErrInvalidValue, *c.ClinicalHours)
	}
	if c.JournalEntries != nil && *c.JournalEntries < 0 {
		return fmt.Errorf("%w: journal entries %d", ErrInvalidValue, *c.JournalEntries)
	}
	return nil
}

func (c TraineeChanges) apply(tr *entity.Trainee) {
	if c.AssignedSupervisor != nil {
		tr.AssignedSupervisor = *c.AssignedSupervisor
	}
	if c.Performance != nil {
		tr.Performance = *c.Performance
	}
	if c.ClinicalHours != nil {
		tr.ClinicalHours = *c.ClinicalHours
	}
	if c.SupervisorRating != nil {
		tr.SupervisorRating = *c.SupervisorRating
	}
	if c.JournalEntries != nil {
		tr.JournalEntries = *c.JournalEntries
	}
	if len(c.AppendReviews) > 0 {
		tr.Reviews = append(tr.Reviews, c.AppendReviews...)
	}
}

// UpdateTrainee merges changes into the trainee with the given id
func (s *Store) UpdateTrainee(id string, changes TraineeChanges) (entity.Trainee, error) {
	if err := changes.validate(); err != nil {
		return entity.Trainee{}, err
	}

	var updated entity.Trainee
	err := s.mutate("UpdateTrainee", func(t *tx) error {
		i := t.s.traineeIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: trainee %s", ErrNotFound, id)
		}
		t.s.trainees[i] = t.s.trainees[i].Clone()
		changes.apply(&t.s.trainees[i])
		updated = t.s.trainees[i].Clone()
		return nil
	})
	return updated, err
}

// AddTraineeReview appends a supervisor review
func (s *Store) AddTraineeReview(id string, review entity.TraineeReview) (entity.Trainee, error) {
	return s.UpdateTrainee(id, TraineeChanges{AppendReviews: []entity.TraineeReview{review}})
}

// Trainees returns all trainees in insertion order
func (s *Store) Trainees() []entity.Trainee {
	var out []entity.Trainee
	s.read(func() {
		out = cloneAll(s.trainees, entity.Trainee.Clone)
	})
	return out
}

// Trainee returns one trainee by id
func (s *Store) Trainee(id string) (entity.Trainee, error) {
	var (
		tr entity.Trainee
		ok bool
	)
	s.read(func() {
		if i := s.traineeIndex(id); i >= 0 {
			tr, ok = s.trainees[i].Clone(), true
		}
	})
	if !ok {
		return entity.Trainee{}, fmt.Errorf("%w: trainee %s", ErrNotFound, id)
	}
	return tr, nil
}

func (s *Store) traineeIndex(id string) int {
	return slices.IndexFunc(s.trainees, func(tr entity.Trainee) bool { return tr.ID == id })
}
