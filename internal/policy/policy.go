// Package policy is the single source of truth for role-gated access.
// It is a pure lookup table; enforcement happens in the HTTP middleware
// and in whatever front end consumes the API.
package policy

import "github.com/mkcore/itam-api/internal/models"

// Verb classifies what an operation does to its target.
type Verb string

const (
	VerbView   Verb = "View"
	VerbCreate Verb = "Create"
	VerbUpdate Verb = "Update"
	VerbDelete Verb = "Delete"
)

// Entity names the kinds an operation can target.
type Entity string

const (
	EntityUser       Entity = "User"
	EntityGroup      Entity = "Group"
	EntityDepartment Entity = "Department"
	EntityAsset      Entity = "Asset"
	EntityAuditLog   Entity = "AuditLog"
)

// Operation pairs an entity kind with a verb.
type Operation struct {
	Entity Entity
	Verb   Verb
}

// View builds a read operation for the entity kind.
func View(e Entity) Operation { return Operation{Entity: e, Verb: VerbView} }

// Create builds a create operation for the entity kind.
func Create(e Entity) Operation { return Operation{Entity: e, Verb: VerbCreate} }

// Update builds an update operation for the entity kind.
func Update(e Entity) Operation { return Operation{Entity: e, Verb: VerbUpdate} }

// Delete builds a delete operation for the entity kind.
func Delete(e Entity) Operation { return Operation{Entity: e, Verb: VerbDelete} }

var allRoles = []models.Role{models.RoleAdmin, models.RoleTechnician, models.RoleUser}

var operators = []models.Role{models.RoleAdmin, models.RoleTechnician}

// PermittedRoles returns the roles allowed to invoke the operation.
// Mutations on any entity kind and every audit log operation require an
// operator role; plain entity reads are open to all roles.
func PermittedRoles(op Operation) []models.Role {
	if op.Entity == EntityAuditLog {
		return operators
	}
	if op.Verb == VerbView {
		return allRoles
	}
	return operators
}

// Allows reports whether the role may invoke the operation.
func Allows(role models.Role, op Operation) bool {
	for _, r := range PermittedRoles(op) {
		if r == role {
			return true
		}
	}
	return false
}
