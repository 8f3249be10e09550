package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestBootstrapBuiltinRoleMatrix(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	cases := []struct {
		role  string
		obj   string
		act   string
		allow bool
	}{
		{"STUDENT", "/api/certificates", "GET", true},
		{"STUDENT", "/api/certificates/crt-1", "GET", true},
		{"STUDENT", "/api/certificates", "POST", false},
		{"COMPANY", "/api/certificates", "GET", true},
		{"COMPANY", "/api/certificates/crt-1", "PUT", false},
		{"INSTITUTE", "/api/certificates", "POST", true},
		{"INSTITUTE", "/api/certificates/crt-1", "PUT", true},
		{"INSTITUTE", "/api/certificates", "GET", true},
		{"INSTITUTE", "/api/admin/stats", "GET", false},
		{"ADMIN", "/api/admin/stats", "GET", true},
		{"ADMIN", "/api/certificates", "POST", true},
	}
	for _, item := range cases {
		allow, err := svc.EnforceRole(item.role, item.obj, item.act)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", item.role, item.obj, item.act, err)
		}
		if allow != item.allow {
			t.Fatalf("enforce %s %s %s: want %v got %v", item.role, item.obj, item.act, item.allow, allow)
		}
	}
}

func TestBootstrapBuiltinRolesIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := []string{"role:admin", "role:company", "role:institute", "role:student"}
	if len(roles) != len(want) {
		t.Fatalf("roles want %v, got %v", want, roles)
	}
	for i, role := range want {
		if roles[i] != role {
			t.Fatalf("roles want %v, got %v", want, roles)
		}
	}
}

func TestGrantAndRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("auditor", "/certificates", "GET"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("auditor", "/api/certificates", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true after grant")
	}

	if err := svc.RevokeRolePolicy("auditor", "/certificates", "GET"); err != nil {
		t.Fatalf("revoke policy failed: %v", err)
	}
	allow, err = svc.EnforceRole("auditor", "/api/certificates", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false after revoke")
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "STUDENT", want: "role:student"},
		{in: "role:institute", want: "role:institute"},
		{in: "  Company  ", want: "role:company"},
		{in: "", wantErr: true},
		{in: "role:", wantErr: true},
	}
	for _, item := range cases {
		got, err := NormalizeRole(item.in)
		if item.wantErr {
			if err == nil {
				t.Fatalf("normalize role %q: expected error", item.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("normalize role %q failed: %v", item.in, err)
		}
		if got != item.want {
			t.Fatalf("normalize role %q: want %q got %q", item.in, item.want, got)
		}
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/certificates/:certificateId", want: "/certificates/:certificateId"},
		{in: "/certificates", want: "/certificates"},
		{in: "certificates", want: "/certificates"},
		{in: "/api", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}
