package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	stored   []attendance.AttendanceEvent
	from, to time.Time
	err      error
}

func (r *recordingEvents) CreateBatch(ctx context.Context, events []attendance.AttendanceEvent) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.stored = append(r.stored, events...)
	return int64(len(events)), nil
}

func (r *recordingEvents) ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.AttendanceEvent, error) {
	r.from, r.to = from, to
	return r.stored, r.err
}

var wib = time.FixedZone("WIB", 7*3600)

func ctxWithCompany(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"company_id": companyID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestIngestEvents(t *testing.T) {
	repo := &recordingEvents{}
	svc := NewEventService(repo, wib)
	emp := "emp-1"

	got, err := svc.IngestEvents(ctxWithCompany(t, "company-1"), attendance.IngestEventsRequest{Events: []attendance.RawEvent{
		{EmployeeID: &emp, ClockIn: "2024-05-06 09:12:00", Status: "En retard"},
		{User: &attendance.RawUserRef{ID: "usr-2"}, ClockIn: "2024-05-06T08:55:00+07:00", ClockOut: "soon"},
		{ExternalRef: "badge-7", Date: "2024-05-06"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Received)
	assert.Equal(t, int64(3), got.Stored)
	assert.Equal(t, 1, got.MalformedTimestamps)

	require.Len(t, repo.stored, 3)
	first := repo.stored[0]
	assert.Equal(t, "company-1", first.CompanyID)
	assert.Equal(t, attendance.LabelLate, first.Label)
	require.NotNil(t, first.ClockInAt)
	assert.True(t, first.ClockInAt.Equal(time.Date(2024, 5, 6, 2, 12, 0, 0, time.UTC)))
	assert.Nil(t, repo.stored[1].ClockOutAt)
}

func TestIngestEvents_Errors(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		svc := NewEventService(&recordingEvents{}, wib)
		_, err := svc.IngestEvents(ctxWithCompany(t, "company-1"), attendance.IngestEventsRequest{})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("copy failed")
		svc := NewEventService(&recordingEvents{err: boom}, wib)
		_, err := svc.IngestEvents(ctxWithCompany(t, "company-1"), attendance.IngestEventsRequest{
			Events: []attendance.RawEvent{{ExternalRef: "badge-7"}},
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestListEvents(t *testing.T) {
	in := time.Date(2024, 5, 6, 9, 0, 0, 0, wib)
	emp := "emp-1"
	repo := &recordingEvents{stored: []attendance.AttendanceEvent{
		{ID: "ev-1", EmployeeID: &emp, ClockInAt: &in, Label: attendance.LabelPresent, RawStatusLabel: "Présent"},
		{ID: "ev-2", User: &attendance.UserRef{ID: "usr-2"}, ExternalRef: "badge-7"},
	}}
	svc := NewEventService(repo, wib)

	got, err := svc.ListEvents(ctxWithCompany(t, "company-1"), attendance.EventFilter{From: "2024-05-06", To: "2024-05-07"})
	require.NoError(t, err)

	assert.True(t, repo.from.Equal(time.Date(2024, 5, 6, 0, 0, 0, 0, wib)))
	assert.True(t, repo.to.Equal(time.Date(2024, 5, 7, 0, 0, 0, 0, wib)))

	require.Len(t, got, 2)
	require.NotNil(t, got[0].ClockIn)
	assert.Equal(t, "2024-05-06T09:00:00+07:00", *got[0].ClockIn)
	assert.Equal(t, "present", got[0].Label)
	require.NotNil(t, got[1].UserID)
	assert.Equal(t, "usr-2", *got[1].UserID)
	assert.Nil(t, got[1].UserEmployeeID)

	_, err = svc.ListEvents(ctxWithCompany(t, "company-1"), attendance.EventFilter{From: "2024-05-07", To: "2024-05-06"})
	assert.Error(t, err)
}
