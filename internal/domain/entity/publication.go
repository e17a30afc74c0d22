package entity

// JournalType separates clinical publications from research papers
type JournalType string

const (
	JournalTypeMedical  JournalType = "Medical"
	JournalTypeResearch JournalType = "Research"
)

// Valid reports whether t is Medical or Research
func (t JournalType) Valid() bool {
	return t == JournalTypeMedical || t == JournalTypeResearch
}

// JournalArticle is an indexed publication. Articles are immutable once published.
type JournalArticle struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Author   string      `json:"author"`
	Type     JournalType `json:"type"`
	Date     string      `json:"date"`
	Abstract string      `json:"abstract"`
}

// ReportType categorizes generated reports
type ReportType string

const (
	ReportTypeFinancial ReportType = "Financial"
	ReportTypeStrategy  ReportType = "Strategy"
	ReportTypeSystem    ReportType = "System"
	ReportTypeGeneral   ReportType = "General"
	ReportTypeAudit     ReportType = "Audit"
)

// Valid reports whether t is one of the enumerated report types
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeFinancial, ReportTypeStrategy, ReportTypeSystem, ReportTypeGeneral, ReportTypeAudit:
		return true
	}
	return false
}

// SystemReport is an immutable generated document
type SystemReport struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        ReportType `json:"type"`
	Size        string     `json:"size"`
	Date        string     `json:"date"`
	GeneratedBy string     `json:"generated_by"`
}

// GuideCategory groups operational guides
type GuideCategory string

const (
	GuideCategorySecurity        GuideCategory = "Security"
	GuideCategorySetup           GuideCategory = "Setup"
	GuideCategoryOnboarding      GuideCategory = "Onboarding"
	GuideCategoryTroubleshooting GuideCategory = "Troubleshooting"
)

// Valid reports whether c is one of the enumerated categories
func (c GuideCategory) Valid() bool {
	switch c {
	case GuideCategorySecurity, GuideCategorySetup, GuideCategoryOnboarding, GuideCategoryTroubleshooting:
		return true
	}
	return false
}

// SystemGuide is an uploaded SOP document. ObjectKey is set when the file body
// was stored in object storage.
type SystemGuide struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Category   GuideCategory `json:"category"`
	UploadedBy string        `json:"uploaded_by"`
	Date       string        `json:"date"`
	Size       string        `json:"size"`
	ObjectKey  string        `json:"object_key,omitempty"`
}
