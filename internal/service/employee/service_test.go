package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/reference"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memoryEmployees struct {
	items  map[string]employee.Employee
	roster int
}

func (m *memoryEmployees) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := m.items[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *memoryEmployees) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	m.roster++
	var out []employee.Employee
	for _, id := range []string{"emp-1", "emp-2"} {
		if emp, ok := m.items[id]; ok && emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *memoryEmployees) UpdateSchedule(ctx context.Context, id string, workScheduleID *string, companyID string) error {
	emp, ok := m.items[id]
	if !ok || emp.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	emp.WorkScheduleID = workScheduleID
	m.items[id] = emp
	return nil
}

type oneSchedule struct {
	schedule.WorkScheduleRepository
}

func (oneSchedule) GetByID(ctx context.Context, id string, companyID string) (schedule.WorkSchedule, error) {
	if id != "ws-1" {
		return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
	}
	return schedule.WorkSchedule{ID: id, CompanyID: companyID}, nil
}

func ctxWithCompany(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"company_id": companyID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService() (employee.EmployeeService, *memoryEmployees) {
	repo := &memoryEmployees{items: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "company-1", EmployeeCode: "E-001", FullName: "Ayu Lestari", EmploymentStatus: employee.EmploymentStatusActive},
		"emp-2": {ID: "emp-2", CompanyID: "company-1", EmployeeCode: "E-002", FullName: "Budi Santoso", EmploymentStatus: employee.EmploymentStatusActive},
	}}
	ref := reference.NewStore(repo, oneSchedule{}, time.Hour)
	return NewEmployeeService(passthroughTx{}, repo, oneSchedule{}, ref), repo
}

func TestListEmployees(t *testing.T) {
	svc, repo := newTestService()
	ctx := ctxWithCompany(t, "company-1")

	got, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "E-001", got[0].EmployeeCode)
	assert.Equal(t, "active", got[0].EmploymentStatus)

	_, err = svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.roster)
}

func TestAssignSchedule(t *testing.T) {
	svc, repo := newTestService()
	ctx := ctxWithCompany(t, "company-1")
	wsID := "ws-1"

	_, err := svc.ListEmployees(ctx)
	require.NoError(t, err)

	got, err := svc.AssignSchedule(ctx, employee.AssignScheduleRequest{EmployeeID: "emp-1", WorkScheduleID: &wsID})
	require.NoError(t, err)
	require.NotNil(t, got.WorkScheduleID)
	assert.Equal(t, "ws-1", *got.WorkScheduleID)

	// the roster cache was dropped, so the next list sees the assignment
	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.NotNil(t, list[0].WorkScheduleID)
	assert.Equal(t, 2, repo.roster)

	cleared, err := svc.AssignSchedule(ctx, employee.AssignScheduleRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Nil(t, cleared.WorkScheduleID)
}

func TestAssignSchedule_Errors(t *testing.T) {
	svc, _ := newTestService()
	ctx := ctxWithCompany(t, "company-1")
	unknown, blank := "ws-9", " "

	_, err := svc.AssignSchedule(ctx, employee.AssignScheduleRequest{EmployeeID: "emp-1", WorkScheduleID: &unknown})
	assert.ErrorIs(t, err, schedule.ErrWorkScheduleNotFound)

	_, err = svc.AssignSchedule(ctx, employee.AssignScheduleRequest{EmployeeID: "emp-9"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.AssignSchedule(ctxWithCompany(t, "company-2"), employee.AssignScheduleRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.AssignSchedule(ctx, employee.AssignScheduleRequest{EmployeeID: "emp-1", WorkScheduleID: &blank})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "work_schedule_id")
}
