package models

// IssueCategory enum
type IssueCategory string

const (
	Roads       IssueCategory = "roads"
	Water       IssueCategory = "water"
	Electricity IssueCategory = "electricity"
	Waste       IssueCategory = "waste"
	Health      IssueCategory = "health"
	Education   IssueCategory = "education"
	Security    IssueCategory = "security"
	Other       IssueCategory = "other"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "pending"
	InProgress IssueStatus = "in-progress"
	Resolved   IssueStatus = "resolved"
)

// Department an issue can be assigned to for triage
type Department string

const (
	RoadsInfrastructure Department = "Roads & Infrastructure"
	WaterServices       Department = "Water Services"
	ElectricityBoard    Department = "Electricity Board"
	WasteManagement     Department = "Waste Management"
	SecurityDept        Department = "Security"
	Unassigned          Department = "Unassigned"
)

// IssueNote is an internal annotation appended to an issue during triage.
// Notes are append-only: they are never edited, reordered or deleted.
type IssueNote struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	CreatedBy string `json:"createdBy"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     IssueCategory `json:"category"`
	Status       IssueStatus   `json:"status"`
	Location     string        `json:"location"`
	ReportedBy   string        `json:"reportedBy"`
	ReportedDate string        `json:"reportedDate"`
	AssignedTo   Department    `json:"assignedTo,omitempty"`
	Notes        []IssueNote   `json:"notes"`
	ImageURL     *string       `json:"imageUrl,omitempty"`
}

// ValidCategory reports whether s is a known issue category
func ValidCategory(s string) bool {
	switch IssueCategory(s) {
	case Roads, Water, Electricity, Waste, Health, Education, Security, Other:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known issue status
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// ValidDepartment reports whether s is a known department
func ValidDepartment(s string) bool {
	switch Department(s) {
	case RoadsInfrastructure, WaterServices, ElectricityBoard, WasteManagement, SecurityDept, Unassigned:
		return true
	}
	return false
}
