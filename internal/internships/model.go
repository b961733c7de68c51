package internships

import "time"

// Internship is a posting shown on the dashboard. MatchScore and FitTags come
// from the external ranking pipeline and are served as-is.
type Internship struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Stipend     string    `json:"stipend"`
	Description string    `json:"description"`
	MatchScore  int       `json:"matchScore"`
	FitTags     []string  `json:"fitTags"`
	CreatedAt   time.Time `json:"createdAt"`
}
