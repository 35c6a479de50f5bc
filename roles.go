package deskauth

// Role evaluators are pure functions of the identity and are safe on a nil
// receiver: an absent identity evaluates like a customer with no company,
// except that every admin/support/staff check is false.

func (id *Identity) role() Role {
	if id == nil {
		return ""
	}
	return id.Role
}

// IsSystemAdmin reports whether the identity holds the system_admin role.
func (id *Identity) IsSystemAdmin() bool { return id.role() == RoleSystemAdmin }

// IsTechnicalSupportAdmin reports whether the identity holds the
// technical_support_admin role.
func (id *Identity) IsTechnicalSupportAdmin() bool { return id.role() == RoleTechnicalSupportAdmin }

// IsSupport reports whether the identity holds the support role.
func (id *Identity) IsSupport() bool { return id.role() == RoleSupport }

// IsCustomer reports whether the identity is a customer. An absent role
// counts as customer; any other role does not.
func (id *Identity) IsCustomer() bool {
	r := id.role()
	return r == RoleCustomer || r == ""
}

// HasAdminAccess reports whether the identity may enter the admin area:
// system_admin or technical_support_admin.
func (id *Identity) HasAdminAccess() bool {
	return id.IsSystemAdmin() || id.IsTechnicalSupportAdmin()
}

// HasSupportAccess reports whether the identity may enter the support area:
// any admin role, or support.
func (id *Identity) HasSupportAccess() bool {
	return id.HasAdminAccess() || id.IsSupport()
}

// IsTechnicalStaff reports whether the identity belongs to the platform's
// own staff rather than a customer company. Equivalent to HasSupportAccess.
func (id *Identity) IsTechnicalStaff() bool { return id.HasSupportAccess() }

// UserCompany returns the identity's company reference, or nil.
func (id *Identity) UserCompany() *Company {
	if id == nil {
		return nil
	}
	return id.Company
}
