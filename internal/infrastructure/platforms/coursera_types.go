package platforms

// ---------------------------------------------------------------------------
// Coursera API Response Types
// ---------------------------------------------------------------------------

// courseraPaging is Coursera's offset-based paging envelope. Next is the
// offset of the next page, 0 when the listing is exhausted.
type courseraPaging struct {
	Next  int `json:"next"`
	Total int `json:"total"`
}

// courseraEnrollmentsResponse is the enrollments listing response
type courseraEnrollmentsResponse struct {
	Elements []courseraEnrollment `json:"elements"`
	Paging   *courseraPaging      `json:"paging,omitempty"`
}

// courseraEnrollment is one enrollment element
type courseraEnrollment struct {
	CourseID     string `json:"courseId"`
	CourseName   string `json:"courseName"`
	LearnerEmail string `json:"learnerEmail"`
	EnrolledAt   string `json:"enrolledAt"`
}

// courseraProgressResponse is the learner progress listing response
type courseraProgressResponse struct {
	Elements []courseraProgress `json:"elements"`
	Paging   *courseraPaging    `json:"paging,omitempty"`
}

// courseraProgress is one learner progress element. OverallProgress is a
// fraction in [0, 1]; CompletionState is one of notStarted, started,
// completed.
type courseraProgress struct {
	CourseID        string  `json:"courseId"`
	CourseName      string  `json:"courseName"`
	LearnerEmail    string  `json:"learnerEmail"`
	OverallProgress float64 `json:"overallProgress"`
	CompletionState string  `json:"completionState"`
	LastActivityAt  string  `json:"lastActivityAt,omitempty"`
}
