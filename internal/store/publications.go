package store

import (
	"fmt"
	"slices"

	"mediaccess/internal/domain/entity"
)

// AddJournal publishes an article at the head of the index
func (s *Store) AddJournal(j entity.JournalArticle) (entity.JournalArticle, error) {
	if !j.Type.Valid() {
		return entity.JournalArticle{}, fmt.Errorf("%w: journal type %q", ErrInvalidValue, j.Type)
	}

	err := s.mutate("AddJournal", func(t *tx) error {
		if j.ID == "" {
			j.ID = t.s.newID()
		}
		if j.Date == "" {
			j.Date = t.s.clock().Format(entity.DateLayout)
		}
		if slices.ContainsFunc(t.s.journals, func(x entity.JournalArticle) bool { return x.ID == j.ID }) {
			return fmt.Errorf("%w: journal %s", ErrDuplicateID, j.ID)
		}
		t.s.journals = prepend(t.s.journals, j)
		t.log(entity.LogModuleDB, fmt.Sprintf("New Research Journal indexed: %s", j.Title), entity.LogStatusOK)
		return nil
	})
	if err != nil {
		return entity.JournalArticle{}, err
	}
	return j, nil
}

// AddReport stores a generated report and announces it
func (s *Store) AddReport(r entity.SystemReport) (entity.SystemReport, error) {
	if !r.Type.Valid() {
		return entity.SystemReport{}, fmt.Errorf("%w: report type %q", ErrInvalidValue, r.Type)
	}

	err := s.mutate("AddReport", func(t *tx) error {
		var err error
		r, err = t.insertReport(r)
		return err
	})
	if err != nil {
		return entity.SystemReport{}, err
	}
	return r, nil
}

func (t *tx) insertReport(r entity.SystemReport) (entity.SystemReport, error) {
	if r.ID == "" {
		r.ID = t.s.newID()
	}
	if r.Date == "" {
		r.Date = t.s.clock().Format(entity.DateLayout)
	}
	if t.s.reportIndex(r.ID) >= 0 {
		return entity.SystemReport{}, fmt.Errorf("%w: report %s", ErrDuplicateID, r.ID)
	}
	t.s.reports = prepend(t.s.reports, r)
	t.notify(entity.NotificationInfo, "Report Generated", fmt.Sprintf("%s is ready for download.", r.Title))
	t.log(entity.LogModuleSystem, fmt.Sprintf("Generated Report: %s", r.Title), entity.LogStatusOK)
	return r, nil
}

// AddGuide stores an uploaded guide at the head of the list
func (s *Store) AddGuide(g entity.SystemGuide) (entity.SystemGuide, error) {
	if !g.Category.Valid() {
		return entity.SystemGuide{}, fmt.Errorf("%w: guide category %q", ErrInvalidValue, g.Category)
	}

	err := s.mutate("AddGuide", func(t *tx) error {
		if g.ID == "" {
			g.ID = t.s.newID()
		}
		if g.Date == "" {
			g.Date = t.s.clock().Format(entity.DateLayout)
		}
		if t.s.guideIndex(g.ID) >= 0 {
			return fmt.Errorf("%w: guide %s", ErrDuplicateID, g.ID)
		}
		t.s.guides = prepend(t.s.guides, g)
		t.log(entity.LogModuleDB, fmt.Sprintf("System Guide uploaded: %s", g.Title), entity.LogStatusOK)
		return nil
	})
	if err != nil {
		return entity.SystemGuide{}, err
	}
	return g, nil
}

// DeleteGuide removes a guide and returns the removed record
func (s *Store) DeleteGuide(id string) (entity.SystemGuide, error) {
	var removed entity.SystemGuide
	err := s.mutate("DeleteGuide", func(t *tx) error {
		i := t.s.guideIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: guide %s", ErrNotFound, id)
		}
		removed = t.s.guides[i]
		t.s.guides = slices.Delete(slices.Clone(t.s.guides), i, i+1)
		return nil
	})
	return removed, err
}

// Journals returns all articles newest first
func (s *Store) Journals() []entity.JournalArticle {
	var out []entity.JournalArticle
	s.read(func() {
		out = cloneAll(s.journals, nil)
	})
	return out
}

// Reports returns all reports newest first
func (s *Store) Reports() []entity.SystemReport {
	var out []entity.SystemReport
	s.read(func() {
		out = cloneAll(s.reports, nil)
	})
	return out
}

// Guides returns all guides newest first
func (s *Store) Guides() []entity.SystemGuide {
	var out []entity.SystemGuide
	s.read(func() {
		out = cloneAll(s.guides, nil)
	})
	return out
}

// Guide returns one guide by id
func (s *Store) Guide(id string) (entity.SystemGuide, error) {
	var (
		g  entity.SystemGuide
		ok bool
	)
	s.read(func() {
		if i := s.guideIndex(id); i >= 0 {
			g, ok = s.guides[i], true
		}
	})
	if !ok {
		return entity.SystemGuide{}, fmt.Errorf("%w: guide %s", ErrNotFound, id)
	}
	return g, nil
}

func (s *Store) reportIndex(id string) int {
	return slices.IndexFunc(s.reports, func(r entity.SystemReport) bool { return r.ID == id })
}

func (s *Store) guideIndex(id string) int {
	return slices.IndexFunc(s.guides, func(g entity.SystemGuide) bool { return g.ID == id })
}
