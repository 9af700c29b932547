package auth

// Role is the closed set of user roles stored in users.role
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCommandant Role = "commandant"
	RoleAccountant Role = "accountant"
	RoleViewer     Role = "viewer"
)

// Roles lists every known role
var Roles = []Role{RoleAdmin, RoleCommandant, RoleAccountant, RoleViewer}

// Module is a functional area gated by role
type Module string

const (
	ModuleStudents Module = "students"
	ModuleRooms    Module = "rooms"
	ModuleStays    Module = "stays"
	ModuleFinance  Module = "finance"
	ModuleReports  Module = "reports"
	ModuleAdmin    Module = "admin"
)

// Modules lists every module in display order
var Modules = []Module{ModuleStudents, ModuleRooms, ModuleStays, ModuleFinance, ModuleReports, ModuleAdmin}

// ParseRole returns the role named by s
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCommandant, RoleAccountant, RoleViewer:
		return true
	}
	return false
}

// HasAccess is the role to module permission table
func HasAccess(role Role, module Module) bool {
	switch role {
	case RoleAdmin:
		return module.valid()
	case RoleCommandant:
		return module == ModuleStudents || module == ModuleRooms || module == ModuleStays || module == ModuleReports
	case RoleAccountant:
		return module == ModuleFinance || module == ModuleReports
	case RoleViewer:
		return module == ModuleReports
	default:
		return false
	}
}

// Allowed is HasAccess over raw strings; unknown roles and modules are denied
func Allowed(role, module string) bool {
	return HasAccess(Role(role), Module(module))
}

// ModulesFor returns the modules visible to role in display order
func ModulesFor(role Role) []Module {
	visible := make([]Module, 0, len(Modules))
	for _, m := range Modules {
		if HasAccess(role, m) {
			visible = append(visible, m)
		}
	}
	return visible
}

func (m Module) valid() bool {
	for _, known := range Modules {
		if m == known {
			return true
		}
	}
	return false
}
