package models

import "time"

// Asset status values.
const (
	AssetStatusInUse = "In Use"
	AssetStatusSpare = "Spare"
)

// Asset represents a piece of IT hardware. AssignedToUserID and
// DepartmentID are nullable references without database-level enforcement:
// deleting the referenced row leaves them dangling until a caller clears
// them.
type Asset struct {
	ID               int64      `db:"id" json:"id"`
	Category         string     `db:"category" json:"category"`
	Product          string     `db:"product" json:"product"`
	Location         string     `db:"location" json:"location"`
	Company          string     `db:"company" json:"company"`
	SerialNumber     string     `db:"serial_number" json:"serial_number"`
	Status           string     `db:"status" json:"status"`
	AssignedToUserID *int64     `db:"assigned_to_user_id" json:"assigned_to_user_id,omitempty"`
	DepartmentID     *int64     `db:"department_id" json:"department_id,omitempty"`
	DeploymentDate   *time.Time `db:"deployment_date" json:"deployment_date,omitempty"`
	Vendor           *string    `db:"vendor" json:"vendor,omitempty"`
	Manufacturer     *string    `db:"manufacturer" json:"manufacturer,omitempty"`
	PurchaseDate     *time.Time `db:"purchase_date" json:"purchase_date,omitempty"`
	OrderNo          *string    `db:"order_no" json:"order_no,omitempty"`
	Price            *string    `db:"price" json:"price,omitempty"`
	OrderStatus      *string    `db:"order_status" json:"order_status,omitempty"`
	WarrantyEndDate  *time.Time `db:"warranty_end_date" json:"warranty_end_date,omitempty"`
	CPU              *string    `db:"cpu" json:"cpu,omitempty"`
	RAM              *string    `db:"ram" json:"ram,omitempty"`
	HDD              *string    `db:"hdd" json:"hdd,omitempty"`
}
