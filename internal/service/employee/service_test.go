package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRequest(name string) employee.CreateEmployeeRequest {
	birth := "1990-04-01"
	return employee.CreateEmployeeRequest{
		FullName:       name,
		BirthDate:      &birth,
		PayBasis:       string(employee.PayBasisHourly),
		Salary:         decimal.NewFromInt(1200),
		Transportation: decimal.NewFromInt(500),
		PIN:            "0420",
	}
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	svc := NewEmployeeService(memory.PassthroughTx, repo)

	resp, err := svc.CreateEmployee(context.Background(), validRequest("  Tanaka Ichiro "))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Tanaka Ichiro", resp.FullName)
	assert.Equal(t, "regular", resp.EmploymentType)
	assert.Equal(t, "hourly", resp.PayBasis)
	assert.Equal(t, "1200.00", resp.Salary)
	assert.Equal(t, "500.00", resp.Transportation)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, "1990-04-01", *resp.BirthDate)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "0420", stored.PINHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PINHash), []byte("0420")))
}

func TestEmployeeService_CreateEmployee_DuplicateName(t *testing.T) {
	svc := NewEmployeeService(memory.PassthroughTx, memory.NewEmployeeRepository())

	_, err := svc.CreateEmployee(context.Background(), validRequest("Suzuki Jiro"))
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), validRequest("Suzuki Jiro"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNameExists)
}

func TestEmployeeService_CreateEmployee_Validation(t *testing.T) {
	svc := NewEmployeeService(memory.PassthroughTx, memory.NewEmployeeRepository())

	req := validRequest("")
	req.PIN = "12a4"
	req.PayBasis = "weekly"

	_, err := svc.CreateEmployee(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := map[string]bool{}
	for _, v := range verrs {
		fields[v.Field] = true
	}
	assert.True(t, fields["full_name"])
	assert.True(t, fields["pin"])
	assert.True(t, fields["pay_basis"])
}

func TestEmployeeService_ListAndDelete(t *testing.T) {
	repo := memory.NewEmployeeRepository()
	svc := NewEmployeeService(memory.PassthroughTx, repo)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.CreateEmployee(ctx, validRequest(name))
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.TotalCount)
	assert.Equal(t, 2, list.TotalPages)
	assert.Len(t, list.Employees, 2)

	id := list.Employees[0].ID
	require.NoError(t, svc.DeleteEmployee(ctx, id))

	_, err = svc.GetEmployee(ctx, id)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.ErrorIs(t, svc.DeleteEmployee(ctx, id), employee.ErrEmployeeNotFound)
}
