package deskauth

import "testing"

func authedSnapshot(role Role) Snapshot {
	return Snapshot{
		Token:         "T1",
		Identity:      &Identity{ID: 1, Role: role},
		Authenticated: true,
	}
}

func TestCheckRoutePermission(t *testing.T) {
	cases := []struct {
		name     string
		desc     RoutePermission
		snapshot Snapshot
		want     bool
	}{
		{
			name: "public route, unauthenticated",
			desc: RoutePermission{},
			want: true,
		},
		{
			name:     "public route, authenticated admin",
			desc:     RoutePermission{},
			snapshot: authedSnapshot(RoleSystemAdmin),
			want:     true,
		},
		{
			name: "auth required, unauthenticated",
			desc: RoutePermission{RequiresAuth: true},
			want: false,
		},
		{
			name:     "auth required, authenticated",
			desc:     RoutePermission{RequiresAuth: true},
			snapshot: authedSnapshot(RoleCustomer),
			want:     true,
		},
		{
			name:     "admin route denies customer",
			desc:     RoutePermission{RequiresAuth: true, RequiresAdmin: true},
			snapshot: authedSnapshot(RoleCustomer),
			want:     false,
		},
		{
			name:     "admin route allows system_admin",
			desc:     RoutePermission{RequiresAuth: true, RequiresAdmin: true},
			snapshot: authedSnapshot(RoleSystemAdmin),
			want:     true,
		},
		{
			name: "admin route denies unauthenticated",
			desc: RoutePermission{RequiresAuth: true, RequiresAdmin: true},
			want: false,
		},
		{
			name:     "support route allows technical_support_admin",
			desc:     RoutePermission{RequiresAuth: true, RequiresSupport: true},
			snapshot: authedSnapshot(RoleTechnicalSupportAdmin),
			want:     true,
		},
		{
			name:     "support route denies customer",
			desc:     RoutePermission{RequiresAuth: true, RequiresSupport: true},
			snapshot: authedSnapshot(RoleCustomer),
			want:     false,
		},
		{
			name:     "company route denies support",
			desc:     RoutePermission{RequiresAuth: true, RequiresCompanyUser: true},
			snapshot: authedSnapshot(RoleSupport),
			want:     false,
		},
		{
			name:     "company route allows missing role",
			desc:     RoutePermission{RequiresAuth: true, RequiresCompanyUser: true},
			snapshot: authedSnapshot(""),
			want:     true,
		},
		{
			name:     "staff route denies customer",
			desc:     RoutePermission{RequiresAuth: true, RequiresTechnicalStaff: true},
			snapshot: authedSnapshot(RoleCustomer),
			want:     false,
		},
		{
			name:     "staff route allows support",
			desc:     RoutePermission{RequiresAuth: true, RequiresTechnicalStaff: true},
			snapshot: authedSnapshot(RoleSupport),
			want:     true,
		},
		{
			name:     "combined flags all must hold",
			desc:     RoutePermission{RequiresAuth: true, RequiresSupport: true, RequiresTechnicalStaff: true},
			snapshot: authedSnapshot(RoleSupport),
			want:     true,
		},
		{
			name:     "combined flags fail on one",
			desc:     RoutePermission{RequiresAuth: true, RequiresAdmin: true, RequiresSupport: true},
			snapshot: authedSnapshot(RoleSupport),
			want:     false,
		},
		{
			name:     "roles list is advisory only",
			desc:     RoutePermission{RequiresAuth: true, Roles: []Role{RoleSystemAdmin}},
			snapshot: authedSnapshot(RoleCustomer),
			want:     true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckRoutePermission(tc.desc, tc.snapshot); got != tc.want {
				t.Fatalf("CheckRoutePermission = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckRoutePermissionAuthenticatedWithoutIdentity(t *testing.T) {
	// The session invariant rules this state out, but the guard must still
	// be total.
	snapshot := Snapshot{Token: "T1", Authenticated: true}
	if CheckRoutePermission(RoutePermission{RequiresAuth: true, RequiresAdmin: true}, snapshot) {
		t.Fatal("expected deny for admin route without identity")
	}
	if !CheckRoutePermission(RoutePermission{RequiresAuth: true, RequiresCompanyUser: true}, snapshot) {
		t.Fatal("expected allow for company route, absent identity is a customer")
	}
}
