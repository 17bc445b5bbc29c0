package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moonjaehyun/shiftroster-backend/api/middleware"
	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
)

type stubSchedulesService struct {
	upsert func(ctx context.Context, actor types.Actor, input schedules.UpsertInput) (*schedules.ScheduleEntryDTO, error)
	delete func(ctx context.Context, actor types.Actor, entryID uuid.UUID) error
	list   func(ctx context.Context, actor types.Actor, storeID uuid.UUID, from, to time.Time) ([]schedules.ScheduleEntryDTO, error)
}

func (s *stubSchedulesService) Upsert(ctx context.Context, actor types.Actor, input schedules.UpsertInput) (*schedules.ScheduleEntryDTO, error) {
	if s.upsert != nil {
		return s.upsert(ctx, actor, input)
	}
	return nil, nil
}

func (s *stubSchedulesService) Delete(ctx context.Context, actor types.Actor, entryID uuid.UUID) error {
	if s.delete != nil {
		return s.delete(ctx, actor, entryID)
	}
	return nil
}

func (s *stubSchedulesService) List(ctx context.Context, actor types.Actor, storeID uuid.UUID, from, to time.Time) ([]schedules.ScheduleEntryDTO, error) {
	if s.list != nil {
		return s.list(ctx, actor, storeID, from, to)
	}
	return nil, nil
}

func seedActorContext(req *http.Request, actor types.Actor, storeID uuid.UUID) *http.Request {
	ctx := middleware.WithUserID(req.Context(), actor.UserID.String())
	ctx = middleware.WithStoreID(ctx, storeID.String())
	ctx = middleware.WithActor(ctx, actor)
	return req.WithContext(ctx)
}

func TestListSchedulesParsesRange(t *testing.T) {
	storeID := uuid.New()
	actor := types.Actor{UserID: uuid.New(), Name: "Boss", Role: enums.MemberRoleOwner}
	svc := &stubSchedulesService{
		list: func(ctx context.Context, a types.Actor, sid uuid.UUID, from, to time.Time) ([]schedules.ScheduleEntryDTO, error) {
			if sid != storeID {
				t.Fatalf("unexpected store id %s", sid)
			}
			if from.Format(schedules.DateLayout) != "2026-09-01" || to.Format(schedules.DateLayout) != "2026-09-07" {
				t.Fatalf("unexpected range %s..%s", from, to)
			}
			return []schedules.ScheduleEntryDTO{{StaffName: "Ji-ho", Status: enums.ShiftStatusWork}}, nil
		},
	}

	handler := ListSchedules(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules?from=2026-09-01&to=2026-09-07", nil)
	req = seedActorContext(req, actor, storeID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []schedules.ScheduleEntryDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].StaffName != "Ji-ho" {
		t.Fatalf("unexpected entries in response")
	}
}

func TestListSchedulesMissingRange(t *testing.T) {
	handler := ListSchedules(&stubSchedulesService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedules", nil)
	req = seedActorContext(req, types.Actor{UserID: uuid.New(), Role: enums.MemberRoleOwner}, uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpsertScheduleHappyPath(t *testing.T) {
	storeID := uuid.New()
	actor := types.Actor{UserID: uuid.New(), Name: "Boss", Role: enums.MemberRoleOwner}
	svc := &stubSchedulesService{
		upsert: func(ctx context.Context, a types.Actor, input schedules.UpsertInput) (*schedules.ScheduleEntryDTO, error) {
			if input.StoreID != storeID {
				t.Fatalf("unexpected store id %s", input.StoreID)
			}
			if input.StaffName != "Ji-ho" {
				t.Fatalf("unexpected staff name %q", input.StaffName)
			}
			if input.Position == nil || *input.Position != enums.ShiftPositionKitchen {
				t.Fatalf("position not parsed")
			}
			return &schedules.ScheduleEntryDTO{StaffName: input.StaffName, Status: input.Status, Version: 1}, nil
		},
	}

	body := `{"staff_name":"Ji-ho","schedule_date":"2026-09-01","status":"work","position":"K"}`
	handler := UpsertSchedule(svc, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/schedules", strings.NewReader(body))
	req = seedActorContext(req, actor, storeID)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpsertScheduleRejectsUnknownStatus(t *testing.T) {
	handler := UpsertSchedule(&stubSchedulesService{}, nil)
	body := `{"staff_name":"Ji-ho","schedule_date":"2026-09-01","status":"vacation"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/schedules", strings.NewReader(body))
	req = seedActorContext(req, types.Actor{UserID: uuid.New(), Role: enums.MemberRoleOwner}, uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpsertScheduleForwardsForbidden(t *testing.T) {
	svc := &stubSchedulesService{
		upsert: func(ctx context.Context, a types.Actor, input schedules.UpsertInput) (*schedules.ScheduleEntryDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot create roster entries")
		},
	}
	body := `{"staff_name":"Ji-ho","schedule_date":"2026-09-01","status":"work"}`
	handler := UpsertSchedule(svc, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/schedules", strings.NewReader(body))
	req = seedActorContext(req, types.Actor{UserID: uuid.New(), Role: enums.MemberRoleManager}, uuid.New())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestDeleteScheduleParsesEntryID(t *testing.T) {
	entryID := uuid.New()
	called := false
	svc := &stubSchedulesService{
		delete: func(ctx context.Context, a types.Actor, id uuid.UUID) error {
			called = true
			if id != entryID {
				t.Fatalf("unexpected entry id %s", id)
			}
			return nil
		},
	}

	r := chi.NewRouter()
	r.Delete("/api/v1/schedules/{entryId}", DeleteSchedule(svc, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schedules/"+entryID.String(), nil)
	req = seedActorContext(req, types.Actor{UserID: uuid.New(), Role: enums.MemberRoleOwner}, uuid.New())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !called {
		t.Fatal("delete never reached the service")
	}
}

func TestDeleteScheduleInvalidID(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/v1/schedules/{entryId}", DeleteSchedule(&stubSchedulesService{}, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schedules/not-a-uuid", nil)
	req = seedActorContext(req, types.Actor{UserID: uuid.New(), Role: enums.MemberRoleOwner}, uuid.New())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
