package models

// Group type values.
const (
	GroupTypeSecurity     = "Security"
	GroupTypeDistribution = "Distribution"
)

// Group represents a security or distribution group. Department is a
// free-text label like on User.
type Group struct {
	ID         int64  `db:"id" json:"id"`
	GroupName  string `db:"group_name" json:"group_name"`
	Type       string `db:"type" json:"type"`
	Department string `db:"department" json:"department"`

	Members []MemberRef `db:"-" json:"members,omitempty"`
}

// GroupSummary is the list projection with a member count instead of the
// full member set.
type GroupSummary struct {
	ID          int64  `db:"id" json:"id"`
	GroupName   string `db:"group_name" json:"group_name"`
	Type        string `db:"type" json:"type"`
	Department  string `db:"department" json:"department"`
	MemberCount int    `db:"member_count" json:"member_count"`
}

// GroupRef is the compact group reference embedded in user records.
type GroupRef struct {
	ID        int64  `db:"id" json:"id"`
	GroupName string `db:"group_name" json:"group_name"`
}

// MemberRef is the compact user reference embedded in group detail records.
type MemberRef struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}
