package domain

// AccountID is the opaque identity under which balances, certificates and
// capabilities are recorded. Accounts come into existence on their first
// balance-affecting operation and are never deleted.
type AccountID string

// NilAccount is the null identity. Operations that take a target account must
// reject it.
const NilAccount AccountID = ""

// Role is a capability an account may hold on a subsystem. Restricted
// operations check the caller's roles up front; there is no inheritance.
type Role string

const (
	// RoleAdmin may grant and revoke other roles and run administrative
	// operations (initial distribution, reserve withdrawal).
	RoleAdmin Role = "admin"
	// RoleMinter may mint certificates.
	RoleMinter Role = "minter"
	// RoleOwner administers the course catalog.
	RoleOwner Role = "owner"
)

// RoleSet tracks which accounts hold which roles on a single subsystem.
type RoleSet map[Role]map[AccountID]struct{}

// NewRoleSet returns an empty role set.
func NewRoleSet() RoleSet {
	return make(RoleSet)
}

// Grant adds role to account. Idempotent.
func (rs RoleSet) Grant(role Role, account AccountID) {
	holders, ok := rs[role]
	if !ok {
		holders = make(map[AccountID]struct{})
		rs[role] = holders
	}
	holders[account] = struct{}{}
}

// Revoke removes role from account. Revoking a role the account does not hold
// is a no-op.
func (rs RoleSet) Revoke(role Role, account AccountID) {
	if holders, ok := rs[role]; ok {
		delete(holders, account)
	}
}

// Has reports whether account holds role.
func (rs RoleSet) Has(role Role, account AccountID) bool {
	_, ok := rs[role][account]
	return ok
}
