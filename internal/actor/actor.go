package actor

// Role identifies the kind of user performing an operation.
type Role string

const (
	RoleCashier    Role = "cashier"
	RoleAccountant Role = "accountant"
	RoleOwner      Role = "owner"
	RoleEmployee   Role = "employee"
)

// Actor carries the identity and role of the caller. It is passed
// explicitly into every mutating engine operation; the engine never
// reads ambient session state.
type Actor struct {
	UserID string
	Role   Role
}

// CanPost reports whether the actor may post journal entries of any class.
func (a Actor) CanPost() bool {
	return a.Role == RoleCashier || a.Role == RoleAccountant || a.Role == RoleOwner
}

// CanAdjust reports whether the actor may post adjustment or closing entries.
func (a Actor) CanAdjust() bool {
	return a.Role == RoleAccountant || a.Role == RoleOwner
}

// CanManageAccounts reports whether the actor may create, edit or remove accounts.
func (a Actor) CanManageAccounts() bool {
	return a.Role == RoleAccountant || a.Role == RoleOwner
}

// CanRecordInventory reports whether the actor may record inventory movements.
func (a Actor) CanRecordInventory() bool {
	return a.Role == RoleCashier || a.Role == RoleAccountant || a.Role == RoleOwner || a.Role == RoleEmployee
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCashier, RoleAccountant, RoleOwner, RoleEmployee:
		return true
	}

	return false
}
