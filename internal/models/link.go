package models

import "time"

// Link is a shared url. PostedByID is nil when the author is unknown.
type Link struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
	PostedByID  *int      `json:"postedById,omitempty"`
}

// LinkDetail is a link with its author and voters resolved.
type LinkDetail struct {
	Link
	PostedBy *User  `json:"postedBy"`
	Voters   []User `json:"voters"`
}

// LinkPatch is a partial update. Nil fields are left untouched.
type LinkPatch struct {
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

// IsEmpty reports whether the patch changes nothing.
func (p LinkPatch) IsEmpty() bool {
	return p.Description == nil && p.URL == nil
}

// Vote is the result of adding a user to a link's voters.
type Vote struct {
	Link Link `json:"link"`
	User User `json:"user"`
}
