package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisalhq/wisal-admin/internal/api"
)

func TestInstitutionSourceOrder(t *testing.T) {
	tests := []struct {
		name string
		resp *api.AuthResponse
		want string
		ok   bool
	}{
		{
			name: "top-level field wins over everything",
			resp: &api.AuthResponse{
				InstitutionID: "inst-top",
				Institution:   &api.Institution{ID: "inst-nested"},
				User:          &api.AuthUser{InstitutionID: "inst-user"},
			},
			want: "inst-top",
			ok:   true,
		},
		{
			name: "nested institution object is second",
			resp: &api.AuthResponse{
				Institution: &api.Institution{ID: "inst-nested"},
				User:        &api.AuthUser{InstitutionID: "inst-user"},
			},
			want: "inst-nested",
			ok:   true,
		},
		{
			name: "user object is last",
			resp: &api.AuthResponse{
				User: &api.AuthUser{InstitutionID: "inst-user"},
			},
			want: "inst-user",
			ok:   true,
		},
		{
			name: "empty strings do not count as present",
			resp: &api.AuthResponse{
				InstitutionID: "",
				Institution:   &api.Institution{ID: ""},
				User:          &api.AuthUser{InstitutionID: "inst-user"},
			},
			want: "inst-user",
			ok:   true,
		},
		{
			name: "no source at all",
			resp: &api.AuthResponse{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstSource(tt.resp, institutionSources)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleSourceOrder(t *testing.T) {
	tests := []struct {
		name string
		resp *api.AuthResponse
		want Role
		ok   bool
	}{
		{
			name: "top-level role wins",
			resp: &api.AuthResponse{
				Role: "ADMIN",
				User: &api.AuthUser{Role: "PUBLISHER"},
			},
			want: RoleAdmin,
			ok:   true,
		},
		{
			name: "user role is the fallback",
			resp: &api.AuthResponse{
				User: &api.AuthUser{Role: "PUBLISHER"},
			},
			want: RolePublisher,
			ok:   true,
		},
		{
			name: "an unknown role reads as absent and the chain moves on",
			resp: &api.AuthResponse{
				Role: "SUPERADMIN",
				User: &api.AuthUser{Role: "DELIVERER"},
			},
			want: RoleDeliverer,
			ok:   true,
		},
		{
			name: "unknown roles everywhere yield nothing",
			resp: &api.AuthResponse{
				Role: "SUPERADMIN",
				User: &api.AuthUser{Role: "MEGAADMIN"},
			},
			ok: false,
		},
		{
			name: "no role anywhere",
			resp: &api.AuthResponse{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstRoleSource(tt.resp, roleSources)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmployeeSourceOrder(t *testing.T) {
	resp := &api.AuthResponse{
		ID:   "emp-top",
		User: &api.AuthUser{ID: "emp-user"},
	}

	got, ok := firstSource(resp, employeeSources)
	require.True(t, ok)
	assert.Equal(t, "emp-top", got)

	got, ok = firstSource(&api.AuthResponse{User: &api.AuthUser{ID: "emp-user"}}, employeeSources)
	require.True(t, ok)
	assert.Equal(t, "emp-user", got)

	_, ok = firstSource(&api.AuthResponse{}, employeeSources)
	assert.False(t, ok)
}
