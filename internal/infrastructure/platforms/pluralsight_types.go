package platforms

// ---------------------------------------------------------------------------
// Pluralsight API Response Types
// ---------------------------------------------------------------------------

// pluralsightCourseUsageResponse is the course usage listing response,
// paginated by page number.
type pluralsightCourseUsageResponse struct {
	Data       []pluralsightCourseUsage `json:"data"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"totalPages"`
}

// pluralsightCourseUsage is one course usage row
type pluralsightCourseUsage struct {
	CourseID      string `json:"courseId"`
	CourseTitle   string `json:"courseTitle"`
	UserEmail     string `json:"userEmail"`
	FirstViewedOn string `json:"firstViewedOn"`
}

// pluralsightCourseProgressResponse is the course progress listing response
type pluralsightCourseProgressResponse struct {
	Data       []pluralsightCourseProgress `json:"data"`
	Page       int                         `json:"page"`
	TotalPages int                         `json:"totalPages"`
}

// pluralsightCourseProgress is one course progress row. Status values
// observed from the plan API: "Not Started", "In Progress", "Completed".
type pluralsightCourseProgress struct {
	CourseID        string  `json:"courseId"`
	CourseTitle     string  `json:"courseTitle"`
	UserEmail       string  `json:"userEmail"`
	PercentComplete float64 `json:"percentComplete"`
	Status          string  `json:"status"`
	LastViewedOn    string  `json:"lastViewedOn,omitempty"`
}
