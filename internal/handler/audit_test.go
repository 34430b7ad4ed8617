package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

func TestRecordLoginRejectsBadEmail(t *testing.T) {
	called := false
	svc := &mockAuditService{
		record: func(ctx context.Context, principal, name, role, email string) (*model.LoginEvent, error) {
			called = true
			return nil, nil
		},
	}
	r := newEngine()
	r.POST("/logins", NewAuditHandler(svc).RecordLogin)

	w := perform(r, http.MethodPost, "/logins", "alice",
		`{"name":"Alice","role":"user","email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if called {
		t.Fatal("service must not be called with an invalid email")
	}
}

func TestRecordLoginCreated(t *testing.T) {
	svc := &mockAuditService{
		record: func(ctx context.Context, principal, name, role, email string) (*model.LoginEvent, error) {
			if principal != "alice" || email != "alice@example.com" {
				t.Errorf("record(%q, %q, %q, %q)", principal, name, role, email)
			}
			return &model.LoginEvent{ID: 1, Principal: principal, Name: name, Role: role, Email: email, CreatedAt: time.Now()}, nil
		},
	}
	r := newEngine()
	r.POST("/logins", NewAuditHandler(svc).RecordLogin)

	w := perform(r, http.MethodPost, "/logins", "alice",
		`{"name":"Alice","role":"user","email":"alice@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestExportCSVHeadersAndBody(t *testing.T) {
	events := []model.LoginEvent{
		{ID: 1, Principal: "p-1", Name: "Alice", Role: "user", Email: "alice@example.com",
			CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)},
	}
	svc := &mockAuditService{
		exportCSV: func(ctx context.Context) (string, error) {
			return service.RenderLoginEventsCSV(events)
		},
	}
	r := newEngine()
	r.GET("/admin/logins.csv", NewAuditHandler(svc).ExportCSV)

	w := perform(r, http.MethodGet, "/admin/logins.csv", "root", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content-type = %q, want text/csv", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "login-tracking.csv") {
		t.Fatalf("content-disposition = %q", cd)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "name,role,email,timestamp,principal\n") {
		t.Fatalf("csv header wrong: %q", body)
	}
	if !strings.Contains(body, "Alice,user,alice@example.com,2026-03-14T09:26:53Z,p-1") {
		t.Fatalf("csv row missing: %q", body)
	}
}
