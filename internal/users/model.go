package users

import "time"

// User is the account record plus the matching profile built up by the
// onboarding and quiz flows.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	PasswordHash    string    `json:"-"`
	Education       string    `json:"education"`
	FieldOfStudy    string    `json:"fieldOfStudy"`
	Skills          string    `json:"skills"`
	QuizTags        string    `json:"quizTags"`
	ProfileComplete bool      `json:"profileComplete"`
	QuizTaken       bool      `json:"quizTaken"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProfileChanges is a partial update; nil fields are left untouched.
type ProfileChanges struct {
	Name            *string
	Education       *string
	FieldOfStudy    *string
	Skills          *string
	QuizTags        *string
	ProfileComplete *bool
	QuizTaken       *bool
}

func (c ProfileChanges) empty() bool {
	return c.Name == nil && c.Education == nil && c.FieldOfStudy == nil &&
		c.Skills == nil && c.QuizTags == nil && c.ProfileComplete == nil && c.QuizTaken == nil
}
