package entity

// TraineeReview is a supervisor's dated comment on a trainee
type TraineeReview struct {
	Date    string `json:"date"`
	Comment string `json:"comment"`
	Author  string `json:"author"`
}

// Trainee represents a trainee doctor or researcher followed by academic partners
type Trainee struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Role               string          `json:"role"`
	Performance        int             `json:"performance"`
	ClinicalHours      int             `json:"clinical_hours"`
	SupervisorRating   float64         `json:"supervisor_rating"`
	JournalEntries     int             `json:"journal_entries"`
	AssignedSupervisor string          `json:"assigned_supervisor,omitempty"`
	Reviews            []TraineeReview `json:"reviews"`
}

// HasSupervisor reports whether a supervisor has been assigned
func (t Trainee) HasSupervisor() bool {
	return t.AssignedSupervisor != ""
}

// Clone returns a copy that shares no slices with t
func (t Trainee) Clone() Trainee {
	t.Reviews = append([]TraineeReview{}, t.Reviews...)
	return t
}

// AvailableSupervisors lists the faculty that can be assigned to trainees
var AvailableSupervisors = []string{
	"Prof. Alan Grant",
	"Dr. Ellie Sattler",
	"Dr. Ian Malcolm",
	"Dr. Sarah Harding",
}
