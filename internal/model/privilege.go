package model

const (
	PrivStockRequestCreate = "stock_request:create"
	PrivStockRequestAnswer = "stock_request:answer"
	PrivStockRequestDelete = "stock_request:delete"
	PrivOverflowCreate     = "overflow:create"
	PrivOverflowDelete     = "overflow:delete"
	PrivOverflowStats      = "overflow:stats"
)

// Role codes
const (
	RoleSupervisor = "SUPERVISOR"
	RoleStaff      = "STAFF"
)

// rolePrivileges: supervisors archive requests and resolve overflows, staff do the rest
var rolePrivileges = map[string][]string{
	RoleSupervisor: {
		PrivStockRequestCreate,
		PrivStockRequestAnswer,
		PrivStockRequestDelete,
		PrivOverflowCreate,
		PrivOverflowDelete,
		PrivOverflowStats,
	},
	RoleStaff: {
		PrivStockRequestCreate,
		PrivStockRequestAnswer,
		PrivOverflowCreate,
		PrivOverflowStats,
	},
}

// PrivilegesForRole returns a copy of the privilege codes for role
func PrivilegesForRole(role string) []string {
	privs := rolePrivileges[role]
	out := make([]string, len(privs))
	copy(out, privs)
	return out
}
