package service

import (
	"context"
	"testing"
	"time"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository/memory"
	"qrt-tracker/internal/utils"
)

const testSecret = "test-secret"

func newUserService(t *testing.T) (*UserService, *utils.JWTSigner) {
	t.Helper()
	tokens := utils.NewJWTSigner(testSecret, time.Hour)
	return NewUserService(memory.New().Users(), tokens), tokens
}

func newQRTService(t *testing.T) (*QRTService, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc := NewQRTService(store.QRTs())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func intp(i int) *int { return &i }

func strp(s string) *string { return &s }

var alice = &models.User{EmployeeID: 1, FirstName: "Alice", LastName: "Smith", IsAdmin: false}

func sampleInput(job string) QRTInput {
	return QRTInput{
		Type:         "Inspection",
		JobNumber:    job,
		AssignedTo:   "Bob Jones",
		RequiredDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		ReasonDesc:   "weld porosity",
	}
}

func mustCreate(t *testing.T, svc *QRTService, job string, items ...ActionItemInput) *models.QRT {
	t.Helper()
	q, err := svc.Create(context.Background(), sampleInput(job), items, alice)
	if err != nil {
		t.Fatalf("Create(%s): %v", job, err)
	}
	return q
}
