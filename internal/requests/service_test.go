package requests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moonjaehyun/shiftroster-backend/internal/schedules"
	"github.com/moonjaehyun/shiftroster-backend/pkg/db/models"
	"github.com/moonjaehyun/shiftroster-backend/pkg/enums"
	pkgerrors "github.com/moonjaehyun/shiftroster-backend/pkg/errors"
	"github.com/moonjaehyun/shiftroster-backend/pkg/types"
)

type stubRequestRepo struct {
	byID         map[uuid.UUID]*models.ChangeRequest
	created      []*models.ChangeRequest
	resolvedRows int64
	pending      []models.ChangeRequest
}

func (s *stubRequestRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRequestRepo) Create(ctx context.Context, req *models.ChangeRequest) error {
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	s.created = append(s.created, req)
	return nil
}

func (s *stubRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ChangeRequest, error) {
	if req, ok := s.byID[id]; ok {
		cpy := *req
		return &cpy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRequestRepo) ListByStoreStatus(ctx context.Context, storeID uuid.UUID, status enums.ChangeRequestStatus) ([]models.ChangeRequest, error) {
	return s.pending, nil
}

func (s *stubRequestRepo) CountPending(ctx context.Context, storeID uuid.UUID) (int64, error) {
	return int64(len(s.pending)), nil
}

func (s *stubRequestRepo) MarkResolved(ctx context.Context, id uuid.UUID, outcome enums.ChangeRequestStatus, reviewedBy string, reviewedAt time.Time) (int64, error) {
	if s.resolvedRows > 0 {
		if req, ok := s.byID[id]; ok {
			req.Status = outcome
			req.ReviewedBy = &reviewedBy
			req.ReviewedAt = &reviewedAt
		}
	}
	return s.resolvedRows, nil
}

type stubScheduleRepo struct {
	byCell   map[string]*models.ScheduleEntry
	upserted []*models.ScheduleEntry
}

func (s *stubScheduleRepo) WithTx(tx *gorm.DB) schedules.Repository { return s }

func (s *stubScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ScheduleEntry, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubScheduleRepo) FindByCell(ctx context.Context, storeID uuid.UUID, staffName string, date time.Time) (*models.ScheduleEntry, error) {
	key := storeID.String() + "|" + staffName + "|" + date.Format(schedules.DateLayout)
	if entry, ok := s.byCell[key]; ok {
		return entry, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubScheduleRepo) Upsert(ctx context.Context, entry *models.ScheduleEntry) error {
	s.upserted = append(s.upserted, entry)
	return nil
}

func (s *stubScheduleRepo) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubScheduleRepo) ListRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]models.ScheduleEntry, error) {
	return nil, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(schedules.DateLayout, value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return parsed
}

func owner() types.Actor {
	return types.Actor{UserID: uuid.New(), Name: "Boss", Role: enums.MemberRoleOwner}
}

func manager() types.Actor {
	return types.Actor{UserID: uuid.New(), Name: "Mi-sook", Role: enums.MemberRoleManager}
}

func staff(name string) types.Actor {
	return types.Actor{UserID: uuid.New(), Name: name, Role: enums.MemberRoleStaff}
}

func newTestService(t *testing.T, repo *stubRequestRepo, sched *stubScheduleRepo) Service {
	t.Helper()
	svc, err := NewService(repo, sched, stubTxRunner{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("code = %s, want %s", typed.Code(), want)
	}
}

func TestCreateManagerSubmitsWithSnapshot(t *testing.T) {
	storeID := uuid.New()
	date := mustDate(t, "2026-09-08")
	sched := &stubScheduleRepo{byCell: map[string]*models.ScheduleEntry{}}
	sched.byCell[storeID.String()+"|Ji-ho|"+date.Format(schedules.DateLayout)] = &models.ScheduleEntry{
		StoreID: storeID, StaffName: "Ji-ho", ScheduleDate: date, Status: enums.ShiftStatusWork,
	}
	repo := &stubRequestRepo{}
	svc := newTestService(t, repo, sched)

	got, err := svc.Create(context.Background(), manager(), CreateInput{
		StoreID:         storeID,
		StaffName:       "Ji-ho",
		ScheduleDate:    date,
		RequestedStatus: enums.ShiftStatusOff,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Status != enums.ChangeRequestStatusPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}
	if got.CurrentStatus == nil || *got.CurrentStatus != enums.ShiftStatusWork {
		t.Fatalf("snapshot = %v, want work", got.CurrentStatus)
	}
	if got.RequesterName != "Mi-sook" {
		t.Fatalf("requester = %q, want Mi-sook", got.RequesterName)
	}
}

func TestCreateSnapshotNilForEmptyCell(t *testing.T) {
	repo := &stubRequestRepo{}
	sched := &stubScheduleRepo{}
	svc := newTestService(t, repo, sched)

	got, err := svc.Create(context.Background(), manager(), CreateInput{
		StoreID:         uuid.New(),
		StaffName:       "Ji-ho",
		ScheduleDate:    mustDate(t, "2026-09-09"),
		RequestedStatus: enums.ShiftStatusWork,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.CurrentStatus != nil {
		t.Fatalf("snapshot = %v, want nil for empty cell", *got.CurrentStatus)
	}
}

func TestCreateOwnerAndStaffDenied(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := newTestService(t, repo, &stubScheduleRepo{})

	input := CreateInput{
		StoreID:         uuid.New(),
		StaffName:       "Ji-ho",
		ScheduleDate:    mustDate(t, "2026-09-10"),
		RequestedStatus: enums.ShiftStatusOff,
	}

	_, err := svc.Create(context.Background(), owner(), input)
	assertCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.Create(context.Background(), staff("Ji-ho"), input)
	assertCode(t, err, pkgerrors.CodeForbidden)

	if len(repo.created) != 0 {
		t.Fatal("denied create reached storage")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t, &stubRequestRepo{}, &stubScheduleRepo{})

	_, err := svc.Create(context.Background(), manager(), CreateInput{
		RequestedStatus: enums.ShiftStatus("vacation"),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestApproveAppliesChangeAndClearsPosition(t *testing.T) {
	storeID := uuid.New()
	requestID := uuid.New()
	date := mustDate(t, "2026-09-11")
	note := "family trip"
	repo := &stubRequestRepo{
		resolvedRows: 1,
		byID: map[uuid.UUID]*models.ChangeRequest{
			requestID: {
				ID:              requestID,
				StoreID:         storeID,
				RequesterName:   "Mi-sook",
				StaffName:       "Ji-ho",
				ScheduleDate:    date,
				RequestedStatus: enums.ShiftStatusOff,
				Note:            &note,
				Status:          enums.ChangeRequestStatusPending,
			},
		},
	}
	sched := &stubScheduleRepo{}
	svc := newTestService(t, repo, sched)

	got, err := svc.Approve(context.Background(), owner(), requestID, storeID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.Status != enums.ChangeRequestStatusApproved {
		t.Fatalf("status = %q, want approved", got.Status)
	}
	if got.ReviewedBy == nil || *got.ReviewedBy != "Boss" {
		t.Fatalf("reviewed_by = %v, want Boss", got.ReviewedBy)
	}
	if len(sched.upserted) != 1 {
		t.Fatalf("roster writes = %d, want 1", len(sched.upserted))
	}
	applied := sched.upserted[0]
	if applied.Status != enums.ShiftStatusOff {
		t.Fatalf("applied status = %q, want off", applied.Status)
	}
	if applied.Position != nil {
		t.Fatalf("position not cleared on approval: %v", *applied.Position)
	}
	if applied.Note == nil || *applied.Note != note {
		t.Fatalf("note = %v, want request note carried onto the entry", applied.Note)
	}
}

func TestRejectLeavesRosterUntouched(t *testing.T) {
	storeID := uuid.New()
	requestID := uuid.New()
	repo := &stubRequestRepo{
		resolvedRows: 1,
		byID: map[uuid.UUID]*models.ChangeRequest{
			requestID: {
				ID:              requestID,
				StoreID:         storeID,
				StaffName:       "Ji-ho",
				ScheduleDate:    mustDate(t, "2026-09-12"),
				RequestedStatus: enums.ShiftStatusOff,
				Status:          enums.ChangeRequestStatusPending,
			},
		},
	}
	sched := &stubScheduleRepo{}
	svc := newTestService(t, repo, sched)

	got, err := svc.Reject(context.Background(), owner(), requestID, storeID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.Status != enums.ChangeRequestStatusRejected {
		t.Fatalf("status = %q, want rejected", got.Status)
	}
	if len(sched.upserted) != 0 {
		t.Fatal("rejection wrote to the roster")
	}
}

func TestResolveTerminalRequest(t *testing.T) {
	storeID := uuid.New()
	requestID := uuid.New()
	repo := &stubRequestRepo{
		byID: map[uuid.UUID]*models.ChangeRequest{
			requestID: {
				ID:      requestID,
				StoreID: storeID,
				Status:  enums.ChangeRequestStatusRejected,
			},
		},
	}
	svc := newTestService(t, repo, &stubScheduleRepo{})

	_, err := svc.Approve(context.Background(), owner(), requestID, storeID)
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestResolveConcurrentLoser(t *testing.T) {
	storeID := uuid.New()
	requestID := uuid.New()
	repo := &stubRequestRepo{
		resolvedRows: 0,
		byID: map[uuid.UUID]*models.ChangeRequest{
			requestID: {
				ID:      requestID,
				StoreID: storeID,
				Status:  enums.ChangeRequestStatusPending,
			},
		},
	}
	svc := newTestService(t, repo, &stubScheduleRepo{})

	_, err := svc.Approve(context.Background(), owner(), requestID, storeID)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestResolveWrongStoreHidesRequest(t *testing.T) {
	requestID := uuid.New()
	repo := &stubRequestRepo{
		byID: map[uuid.UUID]*models.ChangeRequest{
			requestID: {
				ID:      requestID,
				StoreID: uuid.New(),
				Status:  enums.ChangeRequestStatusPending,
			},
		},
	}
	svc := newTestService(t, repo, &stubScheduleRepo{})

	_, err := svc.Approve(context.Background(), owner(), requestID, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestResolveRequiresOwner(t *testing.T) {
	svc := newTestService(t, &stubRequestRepo{}, &stubScheduleRepo{})

	_, err := svc.Approve(context.Background(), manager(), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.Reject(context.Background(), staff("Ji-ho"), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestListPendingOwnerOnly(t *testing.T) {
	svc := newTestService(t, &stubRequestRepo{}, &stubScheduleRepo{})

	_, err := svc.ListPending(context.Background(), staff("Ji-ho"), uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.ListPending(context.Background(), manager(), uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestListByStatusOwnerOnly(t *testing.T) {
	storeID := uuid.New()
	repo := &stubRequestRepo{
		pending: []models.ChangeRequest{
			{ID: uuid.New(), StoreID: storeID, StaffName: "Ji-ho", Status: enums.ChangeRequestStatusApproved, ScheduleDate: mustDate(t, "2026-09-15"), RequestedStatus: enums.ShiftStatusOff},
		},
	}
	svc := newTestService(t, repo, &stubScheduleRepo{})

	got, err := svc.ListByStatus(context.Background(), owner(), storeID, enums.ChangeRequestStatusApproved)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(got) != 1 || got[0].StaffName != "Ji-ho" {
		t.Fatalf("unexpected history %+v", got)
	}

	_, err = svc.ListByStatus(context.Background(), manager(), storeID, enums.ChangeRequestStatusApproved)
	assertCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.ListByStatus(context.Background(), owner(), storeID, enums.ChangeRequestStatus("archived"))
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestListPendingReturnsQueueInOrder(t *testing.T) {
	storeID := uuid.New()
	repo := &stubRequestRepo{
		pending: []models.ChangeRequest{
			{ID: uuid.New(), StoreID: storeID, StaffName: "Ji-ho", Status: enums.ChangeRequestStatusPending, ScheduleDate: mustDate(t, "2026-09-13"), RequestedStatus: enums.ShiftStatusOff},
			{ID: uuid.New(), StoreID: storeID, StaffName: "Soo-ah", Status: enums.ChangeRequestStatusPending, ScheduleDate: mustDate(t, "2026-09-14"), RequestedStatus: enums.ShiftStatusHalf},
		},
	}
	svc := newTestService(t, repo, &stubScheduleRepo{})

	got, err := svc.ListPending(context.Background(), owner(), storeID)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if got.Count != 2 || len(got.Requests) != 2 {
		t.Fatalf("count = %d with %d rows, want 2/2", got.Count, len(got.Requests))
	}
	if got.Requests[0].StaffName != "Ji-ho" {
		t.Fatalf("first request = %q, want Ji-ho", got.Requests[0].StaffName)
	}
}
