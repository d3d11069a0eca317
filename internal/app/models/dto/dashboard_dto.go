package dto

// StudentDashboard aggregates everything a student's landing view needs
type StudentDashboard struct {
	Profile       StudentResponse   `json:"profile"`
	Batch         *BatchResponse    `json:"batch,omitempty"`
	LeaveRequests []LeaveResponse   `json:"leaveRequests"`
	Queries       []QueryResponse   `json:"queries"`
	Projects      []ProjectResponse `json:"projects"`
}

// FacultyDashboard aggregates a faculty member's assigned batches and students
type FacultyDashboard struct {
	Batches  []BatchResponse   `json:"batches"`
	Students []StudentResponse `json:"students"`
}

// AdminDashboard aggregates the portal-wide counters for the admin landing view
type AdminDashboard struct {
	PendingStudents   int `json:"pendingStudents"`
	ApprovedStudents  int `json:"approvedStudents"`
	RejectedStudents  int `json:"rejectedStudents"`
	OngoingBatches    int `json:"ongoingBatches"`
	UpcomingBatches   int `json:"upcomingBatches"`
	CompletedBatches  int `json:"completedBatches"`
	PendingLeaves     int `json:"pendingLeaves"`
	UnresolvedQueries int `json:"unresolvedQueries"`
	TotalProjects     int `json:"totalProjects"`
}
