package platforms

// ---------------------------------------------------------------------------
// Udemy Business API Response Types
// ---------------------------------------------------------------------------

// udemyUserCourseActivityResponse is the paginated user course activity
// report. Next carries the absolute URL of the next page, empty on the
// last page.
type udemyUserCourseActivityResponse struct {
	Count   int                       `json:"count"`
	Next    string                    `json:"next"`
	Results []udemyUserCourseActivity `json:"results"`
}

// udemyUserCourseActivity is one report row. CompletionRatio is already
// a percentage in [0, 100].
type udemyUserCourseActivity struct {
	CourseID         int64   `json:"course_id"`
	CourseTitle      string  `json:"course_title"`
	UserEmail        string  `json:"user_email"`
	EnrollmentDate   string  `json:"enrollment_date"`
	CompletionRatio  float64 `json:"completion_ratio"`
	LastAccessedDate string  `json:"course_last_accessed_date"`
}
