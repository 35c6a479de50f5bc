package deskauth

import "testing"

func TestRoleEvaluators(t *testing.T) {
	cases := []struct {
		name     string
		identity *Identity
		admin    bool
		support  bool
		staff    bool
		customer bool
	}{
		{name: "nil identity", identity: nil, customer: true},
		{name: "no role", identity: &Identity{ID: 1}, customer: true},
		{name: "customer", identity: &Identity{Role: RoleCustomer}, customer: true},
		{name: "unknown role", identity: &Identity{Role: "auditor"}},
		{name: "support", identity: &Identity{Role: RoleSupport}, support: true, staff: true},
		{name: "technical_support_admin", identity: &Identity{Role: RoleTechnicalSupportAdmin}, admin: true, support: true, staff: true},
		{name: "system_admin", identity: &Identity{Role: RoleSystemAdmin}, admin: true, support: true, staff: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.identity.HasAdminAccess(); got != tc.admin {
				t.Fatalf("HasAdminAccess = %v, want %v", got, tc.admin)
			}
			if got := tc.identity.HasSupportAccess(); got != tc.support {
				t.Fatalf("HasSupportAccess = %v, want %v", got, tc.support)
			}
			if got := tc.identity.IsTechnicalStaff(); got != tc.staff {
				t.Fatalf("IsTechnicalStaff = %v, want %v", got, tc.staff)
			}
			if got := tc.identity.IsCustomer(); got != tc.customer {
				t.Fatalf("IsCustomer = %v, want %v", got, tc.customer)
			}
		})
	}
}

func TestSystemAdminEvaluators(t *testing.T) {
	id := &Identity{Role: RoleSystemAdmin}
	if !id.IsSystemAdmin() || id.IsTechnicalSupportAdmin() || id.IsSupport() {
		t.Fatal("system_admin should match only its own role predicate")
	}
	if id.IsCustomer() {
		t.Fatal("system_admin is not a customer")
	}
}

func TestUserCompany(t *testing.T) {
	var id *Identity
	if id.UserCompany() != nil {
		t.Fatal("nil identity has no company")
	}

	withCompany := &Identity{Role: RoleCustomer, Company: &Company{ID: 4, Code: "ACME"}}
	if got := withCompany.UserCompany(); got == nil || got.Code != "ACME" {
		t.Fatalf("unexpected company: %+v", got)
	}
	staff := &Identity{Role: RoleSupport}
	if staff.UserCompany() != nil {
		t.Fatal("staff identity carries no company")
	}
}
