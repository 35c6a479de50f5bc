package deskauth

// RoutePermission is the static permission descriptor the navigation layer
// attaches to each navigable route. Roles is carried for the navigation
// layer's own use; the guard itself decides on the boolean flags.
type RoutePermission struct {
	RequiresAuth           bool
	RequiresAdmin          bool
	RequiresSupport        bool
	RequiresCompanyUser    bool
	RequiresTechnicalStaff bool
	Roles                  []Role
}

// CheckRoutePermission decides whether the session may enter a route. It is
// pure and total: the checks run in a fixed order, all flagged checks must
// hold, and the first failing one denies.
func CheckRoutePermission(desc RoutePermission, snapshot Snapshot) bool {
	if !desc.RequiresAuth {
		return true
	}
	if !snapshot.Authenticated {
		return false
	}

	id := snapshot.Identity
	if desc.RequiresAdmin && !id.HasAdminAccess() {
		return false
	}
	if desc.RequiresSupport && !id.HasSupportAccess() {
		return false
	}
	if desc.RequiresCompanyUser && !id.IsCustomer() {
		return false
	}
	if desc.RequiresTechnicalStaff && !id.IsTechnicalStaff() {
		return false
	}
	return true
}
