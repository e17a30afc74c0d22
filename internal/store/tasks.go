package store

import (
	"fmt"
	"slices"

	"mediaccess/internal/domain/entity"
)

// TaskChanges holds a partial update. Nil fields are left unchanged.
type TaskChanges struct {
	Title     *string
	SLARating *entity.SLARating
	Status    *entity.TaskStatus
}

func (c TaskChanges) validate(current entity.AdminTask) error {
	if c.SLARating != nil && !c.SLARating.Valid() {
		return fmt.Errorf("%w: sla rating %q", ErrInvalidValue, *c.SLARating)
	}
	if c.Status == nil {
		return nil
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: task status %q", ErrInvalidValue, *c.Status)
	}
	if !current.Status.CanTransitionTo(*c.Status) {
		return fmt.Errorf("%w: task %s cannot move from %s to %s", ErrInvalidTransition, current.ID, current.Status, *c.Status)
	}
	return nil
}

func validateTask(task entity.AdminTask) error {
	if !task.Type.Valid() {
		return fmt.Errorf("%w: task type %q", ErrInvalidValue, task.Type)
	}
	if !task.SLARating.Valid() {
		return fmt.Errorf("%w: sla rating %q", ErrInvalidValue, task.SLARating)
	}
	if !task.Status.Valid() {
		return fmt.Errorf("%w: task status %q", ErrInvalidValue, task.Status)
	}
	return nil
}

// AddTask places a new task at the head of the queue.
// Empty id and date are filled in; an empty status defaults to Pending.
func (s *Store) AddTask(task entity.AdminTask) (entity.AdminTask, error) {
	if task.Status == "" {
		task.Status = entity.TaskStatusPending
	}
	if err := validateTask(task); err != nil {
		return entity.AdminTask{}, err
	}

	err := s.mutate("AddTask", func(t *tx) error {
		var err error
		task, err = t.insertTask(task)
		return err
	})
	if err != nil {
		return entity.AdminTask{}, err
	}
	return task, nil
}

func (t *tx) insertTask(task entity.AdminTask) (entity.AdminTask, error) {
	if task.ID == "" {
		task.ID = t.s.newID()
	}
	if task.Date == "" {
		task.Date = t.s.clock().Format(entity.DateLayout)
	}
	if t.s.taskIndex(task.ID) >= 0 {
		return entity.AdminTask{}, fmt.Errorf("%w: task %s", ErrDuplicateID, task.ID)
	}
	t.s.tasks = prepend(t.s.tasks, task)
	return task, nil
}

// UpdateTask merges changes into the task with the given id.
// A status change is logged.
func (s *Store) UpdateTask(id string, changes TaskChanges) (entity.AdminTask, error) {
	var updated entity.AdminTask
	err := s.mutate("UpdateTask", func(t *tx) error {
		i := t.s.taskIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: task %s", ErrNotFound, id)
		}
		if err := changes.validate(t.s.tasks[i]); err != nil {
			return err
		}

		task := &t.s.tasks[i]
		if changes.Title != nil {
			task.Title = *changes.Title
		}
		if changes.SLARating != nil {
			task.SLARating = *changes.SLARating
		}
		if changes.Status != nil {
			task.Status = *changes.Status
			t.log(entity.LogModuleSystem, fmt.Sprintf("Task %s status changed to %s", id, task.Status), entity.LogStatusOK)
		}
		updated = *task
		return nil
	})
	return updated, err
}

// Tasks returns the task queue newest first
func (s *Store) Tasks() []entity.AdminTask {
	var out []entity.AdminTask
	s.read(func() {
		out = cloneAll(s.tasks, nil)
	})
	return out
}

// Task returns one task by id
func (s *Store) Task(id string) (entity.AdminTask, error) {
	var (
		task entity.AdminTask
		ok   bool
	)
	s.read(func() {
		if i := s.taskIndex(id); i >= 0 {
			task, ok = s.tasks[i], true
		}
	})
	if !ok {
		return entity.AdminTask{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	return task, nil
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(task entity.AdminTask) bool { return task.ID == id })
}

// ToggleSLACheck flips one checklist item between checked and unchecked
func (s *Store) ToggleSLACheck(id string) (entity.SLACheck, error) {
	var updated entity.SLACheck
	err := s.mutate("ToggleSLACheck", func(t *tx) error {
		i := slices.IndexFunc(t.s.slaChecks, func(c entity.SLACheck) bool { return c.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: sla check %s", ErrNotFound, id)
		}
		t.s.slaChecks[i].Checked = !t.s.slaChecks[i].Checked
		updated = t.s.slaChecks[i]
		return nil
	})
	return updated, err
}

// SLAChecks returns the checklist in display order
func (s *Store) SLAChecks() []entity.SLACheck {
	var out []entity.SLACheck
	s.read(func() {
		out = cloneAll(s.slaChecks, nil)
	})
	return out
}
