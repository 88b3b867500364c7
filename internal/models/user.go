package models

// Role represents the access level of an account.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleTechnician Role = "Technician"
	RoleUser       Role = "User"
)

// User status values.
const (
	UserStatusActive   = "Active"
	UserStatusDisabled = "Disabled"
)

// Account type values.
const (
	AccountTypeUser       = "User"
	AccountTypeService    = "Service"
	AccountTypeSystem     = "System"
	AccountTypeConsultant = "Consultant"
)

// User represents an employee or service account stored in the users table.
// Department is a free-text label, not a foreign key; the denormalization is
// carried over from the system this register replaces.
type User struct {
	ID          int64  `db:"id" json:"id"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	UserStatus  string `db:"user_status" json:"user_status"`
	AccountType string `db:"account_type" json:"account_type"`
	Account     string `db:"account" json:"account"`
	Domain      string `db:"domain" json:"domain"`
	Upn         string `db:"upn" json:"upn"`
	Email       string `db:"email" json:"email"`
	Password    string `db:"password" json:"-"`
	JobTitle    string `db:"job_title" json:"job_title"`
	Company     string `db:"company" json:"company"`
	Description string `db:"description" json:"description,omitempty"`
	ManagerName string `db:"manager_name" json:"manager_name,omitempty"`
	Department  string `db:"department" json:"department"`
	Role        Role   `db:"role" json:"role"`

	Groups []GroupRef `db:"-" json:"groups"`
}

// UserInfo is the reduced projection returned by login. It never carries
// the credential.
type UserInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Account   string `json:"account"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Info projects the user for authentication responses.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Account:   u.Account,
		Email:     u.Email,
		Role:      u.Role,
	}
}
