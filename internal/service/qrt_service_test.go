package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"qrt-tracker/internal/models"
)

func TestQRTCreate(t *testing.T) {
	svc, _ := newQRTService(t)

	q := mustCreate(t, svc, "JN-1",
		ActionItemInput{SortIdx: intp(2), Section: "Verify", Description: "second"},
		ActionItemInput{SortIdx: intp(1), Section: "Contain", Description: "first"},
	)
	if q.Status != models.StatusInProgress {
		t.Fatalf("status = %q", q.Status)
	}
	if q.GeneratedBy != "Alice Smith" {
		t.Fatalf("generatedBy = %q", q.GeneratedBy)
	}
	if len(q.ActionItems) != 2 || q.ActionItems[0].Description != "first" {
		t.Fatalf("items not sorted by sortIdx: %+v", q.ActionItems)
	}
	for _, a := range q.ActionItems {
		if a.QRTID != q.ID || a.Completed {
			t.Fatalf("unexpected item %+v", a)
		}
	}
}

func TestQRTCreate_Validation(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()

	noJob := sampleInput("")
	if _, err := svc.Create(ctx, noJob, nil, alice); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for missing job number, got %v", err)
	}
	if _, err := svc.Create(ctx, sampleInput("JN"), []ActionItemInput{{Section: "S"}}, alice); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for missing sortIdx, got %v", err)
	}
	if _, err := svc.Create(ctx, sampleInput("JN"), []ActionItemInput{{ID: 3, SortIdx: intp(1), Section: "S"}}, alice); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for item with id, got %v", err)
	}
	in := sampleInput("JN")
	in.ReasonID = intp(77)
	if _, err := svc.Create(ctx, in, nil, alice); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown reason, got %v", err)
	}
}

func TestQRTList_StatusAndKeyword(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()

	open := mustCreate(t, svc, "JN-42")
	done := mustCreate(t, svc, "JN-43")
	if _, err := svc.CompleteAll(ctx, done.ID, alice); err != nil {
		t.Fatalf("CompleteAll: %v", err)
	}

	page, err := svc.List(ctx, ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.QRTs) != 1 || page.QRTs[0].ID != open.ID {
		t.Fatalf("default listing should hide complete tickets: %+v", page.QRTs)
	}

	page, err = svc.List(ctx, ListParams{ShowComplete: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.QRTs) != 2 {
		t.Fatalf("showComplete listing = %d tickets", len(page.QRTs))
	}

	cases := []struct {
		keyword string
		want    int
	}{
		{"42", 1},
		{"jn-4", 2},
		{"INSPECTION", 2},
		{"alice", 2},
		{"2024-04-15", 2},
		{"zzz", 0},
	}
	for _, tc := range cases {
		t.Run(tc.keyword, func(t *testing.T) {
			page, err := svc.List(ctx, ListParams{Keyword: tc.keyword, ShowComplete: true})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(page.QRTs) != tc.want {
				t.Fatalf("keyword %q matched %d, want %d", tc.keyword, len(page.QRTs), tc.want)
			}
		})
	}
}

func TestQRTList_Pagination(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()
	for i := 0; i < 23; i++ {
		mustCreate(t, svc, fmt.Sprintf("JN-%02d", i))
	}

	page, err := svc.List(ctx, ListParams{Page: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pages != 3 || page.Page != 3 || len(page.QRTs) != 3 {
		t.Fatalf("page 3: pages=%d page=%d len=%d", page.Pages, page.Page, len(page.QRTs))
	}

	page, err = svc.List(ctx, ListParams{Page: 0})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 1 || len(page.QRTs) != PageSize || page.QRTs[0].JobNumber != "JN-00" {
		t.Fatalf("page 0 should clamp to 1: page=%d len=%d", page.Page, len(page.QRTs))
	}

	page, err = svc.List(ctx, ListParams{Page: 9})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.QRTs) != 0 || page.QRTs == nil {
		t.Fatalf("past the end should be an empty list, got %v", page.QRTs)
	}
}

func TestQRTUpdate(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()
	q := mustCreate(t, svc, "JN-1", ActionItemInput{SortIdx: intp(1), Section: "Contain", Description: "old"})
	other := mustCreate(t, svc, "JN-2", ActionItemInput{SortIdx: intp(1), Section: "Contain"})

	in := sampleInput("JN-1b")
	in.AssignedTo = "Carol"
	got, err := svc.Update(ctx, q.ID, in, []ActionItemInput{
		{ID: q.ActionItems[0].ID, SortIdx: intp(5), Section: "Contain", Description: "edited"},
		{SortIdx: intp(2), Section: "Verify", Description: "added"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.JobNumber != "JN-1b" || got.AssignedTo != "Carol" || got.GeneratedBy != "Alice Smith" {
		t.Fatalf("unexpected ticket %+v", got)
	}
	if len(got.ActionItems) != 2 || got.ActionItems[0].Description != "added" || got.ActionItems[1].Description != "edited" {
		t.Fatalf("unexpected items %+v", got.ActionItems)
	}

	_, err = svc.Update(ctx, q.ID, in, []ActionItemInput{
		{ID: other.ActionItems[0].ID, SortIdx: intp(1), Section: "Hijack"},
	})
	if !errors.Is(err, ErrNotFound) || err.Error() != "Action Item not found" {
		t.Fatalf("expected Action Item not found, got %v", err)
	}
	untouched, _ := svc.Get(ctx, other.ID)
	if untouched.ActionItems[0].Section != "Contain" {
		t.Fatalf("foreign item was modified: %+v", untouched.ActionItems[0])
	}

	if _, err := svc.Update(ctx, 999, in, nil); !errors.Is(err, ErrNotFound) || err.Error() != "QRT not found" {
		t.Fatalf("expected QRT not found, got %v", err)
	}
}

func TestQRTCompleteActionItem_PromotesTicket(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()
	q := mustCreate(t, svc, "JN-1",
		ActionItemInput{SortIdx: intp(1), Section: "A"},
		ActionItemInput{SortIdx: intp(2), Section: "B"},
	)

	got, err := svc.CompleteActionItem(ctx, q.ID, q.ActionItems[0].ID, alice)
	if err != nil {
		t.Fatalf("CompleteActionItem: %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Fatalf("ticket should stay open with one item left")
	}
	first := got.ActionItems[0]
	if !first.Completed || first.CompletedBy != "Alice Smith" || first.CompletedOn == nil || !first.CompletedOn.Equal(svc.now()) {
		t.Fatalf("item not stamped: %+v", first)
	}

	got, err = svc.CompleteActionItem(ctx, q.ID, q.ActionItems[1].ID, alice)
	if err != nil {
		t.Fatalf("CompleteActionItem: %v", err)
	}
	if got.Status != models.StatusComplete {
		t.Fatalf("ticket should be complete, got %q", got.Status)
	}

	if _, err := svc.CompleteActionItem(ctx, q.ID, 999, alice); !errors.Is(err, ErrNotFound) || err.Error() != "Action Item not found" {
		t.Fatalf("expected Action Item not found, got %v", err)
	}
	if _, err := svc.CompleteActionItem(ctx, 999, q.ActionItems[0].ID, alice); !errors.Is(err, ErrNotFound) || err.Error() != "QRT not found" {
		t.Fatalf("expected QRT not found, got %v", err)
	}
}

func TestQRTCompleteAll(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()
	q := mustCreate(t, svc, "JN-1",
		ActionItemInput{SortIdx: intp(1), Section: "A"},
		ActionItemInput{SortIdx: intp(2), Section: "B"},
	)
	// completed earlier by someone else
	bob := &models.User{EmployeeID: 2, FirstName: "Bob", LastName: "Jones"}
	if _, err := svc.CompleteActionItem(ctx, q.ID, q.ActionItems[0].ID, bob); err != nil {
		t.Fatalf("CompleteActionItem: %v", err)
	}

	got, err := svc.CompleteAll(ctx, q.ID, alice)
	if err != nil {
		t.Fatalf("CompleteAll: %v", err)
	}
	if got.Status != models.StatusComplete {
		t.Fatalf("status = %q", got.Status)
	}
	for _, a := range got.ActionItems {
		if !a.Completed || a.CompletedBy != "Alice Smith" || a.CompletedOn == nil || !a.CompletedOn.Equal(svc.now()) {
			t.Fatalf("every item should carry the closing stamp: %+v", a)
		}
	}

	if _, err := svc.CompleteAll(ctx, 999, alice); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQRTDelete(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()
	q := mustCreate(t, svc, "JN-1", ActionItemInput{SortIdx: intp(1), Section: "A"})

	if err := svc.Delete(ctx, q.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestQRTSummary(t *testing.T) {
	svc, _ := newQRTService(t)
	ctx := context.Background()

	late := sampleInput("late")
	late.RequiredDate = svc.now().AddDate(0, 0, -1)
	if _, err := svc.Create(ctx, late, nil, alice); err != nil {
		t.Fatalf("Create: %v", err)
	}
	mustCreate(t, svc, "on-time")
	done := mustCreate(t, svc, "done")
	if _, err := svc.CompleteAll(ctx, done.ID, alice); err != nil {
		t.Fatalf("CompleteAll: %v", err)
	}

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.InProgress != 2 || sum.Complete != 1 || sum.Overdue != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
