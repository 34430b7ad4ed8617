package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
)

func TestCallerAuthRejectsAnonymous(t *testing.T) {
	r := newEngine()
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"caller": Caller(c)})
	})

	w := perform(r, http.MethodGet, "/whoami", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCallerAuthSetsPrincipal(t *testing.T) {
	r := newEngine()
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"caller": Caller(c)})
	})

	w := perform(r, http.MethodGet, "/whoami", "principal-42", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Caller string `json:"caller"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Caller != "principal-42" {
		t.Fatalf("caller = %q", body.Caller)
	}
}

func TestRequireAdmin(t *testing.T) {
	profiles := &mockProfileService{
		isAdmin: func(ctx context.Context, principal string) (bool, error) {
			switch principal {
			case "root":
				return true, nil
			case "broken":
				return false, errors.New("db down")
			}
			return false, nil
		},
	}
	r := newEngine()
	admin := r.Group("/admin", RequireAdmin(profiles))
	admin.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, tc := range []struct {
		caller string
		want   int
	}{
		{"root", http.StatusOK},
		{"alice", http.StatusForbidden},
		{"broken", http.StatusInternalServerError},
	} {
		w := perform(r, http.MethodGet, "/admin/ping", tc.caller, "")
		if w.Code != tc.want {
			t.Errorf("caller %q: status = %d, want %d", tc.caller, w.Code, tc.want)
		}
	}
}

func TestProfileGetBeforeSetup(t *testing.T) {
	svc := &mockProfileService{
		get: func(ctx context.Context, principal string) (*model.UserProfile, error) {
			return nil, errs.ErrProfileNotFound
		},
	}
	r := newEngine()
	r.GET("/profile", NewProfileHandler(svc).GetCaller)

	w := perform(r, http.MethodGet, "/profile", "newcomer", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestInitAccessControlReturnsRole(t *testing.T) {
	svc := &mockProfileService{
		initAccess: func(ctx context.Context, principal string) (model.UserRole, error) {
			return model.RoleAdmin, nil
		},
	}
	r := newEngine()
	r.POST("/access-control/init", NewProfileHandler(svc).InitAccessControl)

	w := perform(r, http.MethodPost, "/access-control/init", "first-user", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Role model.UserRole `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Role != model.RoleAdmin {
		t.Fatalf("role = %q, want admin", body.Role)
	}
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	svc := &mockProfileService{
		assignRole: func(ctx context.Context, principal string, role model.UserRole) error {
			t.Error("service must not be called for an unknown role")
			return nil
		},
	}
	r := newEngine()
	r.PUT("/admin/roles/:principal", NewProfileHandler(svc).AssignRole)

	w := perform(r, http.MethodPut, "/admin/roles/alice", "root", `{"role":"superuser"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSetAvailability(t *testing.T) {
	svc := &mockAvailabilityService{
		set: func(ctx context.Context, technician string, isAvailable bool) (*model.TechnicianAvailability, error) {
			if technician != "bob" || isAvailable {
				t.Errorf("set(%q, %v)", technician, isAvailable)
			}
			return &model.TechnicianAvailability{Technician: technician, IsAvailable: isAvailable}, nil
		},
	}
	r := newEngine()
	r.PUT("/availability", NewAvailabilityHandler(svc).SetMine)

	w := perform(r, http.MethodPut, "/availability", "bob", `{"is_available":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

// A caller without a technician profile must not be able to list itself as
// available and start receiving tickets.
func TestSetAvailabilityNonTechnicianForbidden(t *testing.T) {
	svc := &mockAvailabilityService{
		set: func(ctx context.Context, technician string, isAvailable bool) (*model.TechnicianAvailability, error) {
			return nil, errs.ErrForbidden
		},
	}
	r := newEngine()
	r.PUT("/availability", NewAvailabilityHandler(svc).SetMine)

	w := perform(r, http.MethodPut, "/availability", "alice", `{"is_available":true}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestAllOfflineReportsCount(t *testing.T) {
	svc := &mockAvailabilityService{
		allOffline: func(ctx context.Context) (int64, error) { return 4, nil },
	}
	r := newEngine()
	r.POST("/admin/availability/offline-all", NewAvailabilityHandler(svc).AllOffline)

	w := perform(r, http.MethodPost, "/admin/availability/offline-all", "root", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		TakenOffline int64 `json:"taken_offline"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.TakenOffline != 4 {
		t.Fatalf("taken_offline = %d, want 4", body.TakenOffline)
	}
}
