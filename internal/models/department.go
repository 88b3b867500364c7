package models

// Department is an organizational unit. Assets may point at it by id;
// users reference departments by name only.
type Department struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
}
