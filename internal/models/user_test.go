package models

import "testing"

func TestProjectRoleFlags(t *testing.T) {
	tests := []struct {
		name  string
		roles []UserRole
		want  RoleFlags
	}{
		{"no roles", nil, RoleFlags{}},
		{"buyer only", []UserRole{Buyer}, RoleFlags{IsBuyer: true}},
		{"provider and advertiser", []UserRole{Provider, Advertiser}, RoleFlags{IsProvider: true, IsAdvertiser: true}},
		{"all roles", []UserRole{Buyer, Provider, Advertiser}, RoleFlags{IsBuyer: true, IsProvider: true, IsAdvertiser: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectRoleFlags(tt.roles)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	user := User{ID: "user-1", Username: "anna", Roles: []UserRole{Buyer, Advertiser}}

	if !user.HasRole(Buyer) {
		t.Errorf("expected user to have Buyer role")
	}
	if user.HasRole(Provider) {
		t.Errorf("expected user not to have Provider role")
	}
}

func TestNegotiationStatusIsTerminal(t *testing.T) {
	terminal := []NegotiationStatus{ConfirmedNegotiation, RejectedNegotiation, CancelledNegotiation}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Errorf("expected %s to be terminal", status)
		}
	}

	active := []NegotiationStatus{PendingNegotiation, CounteredNegotiation}
	for _, status := range active {
		if status.IsTerminal() {
			t.Errorf("expected %s not to be terminal", status)
		}
	}
}
