package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
)

func TestSearchPatients(t *testing.T) {
	sqlSvc := newTestSqlService(t)
	users := repositories.NewUserRepository(sqlSvc.Db())
	svc := &PatientService{sqlSvc: sqlSvc, users: users}

	seed := []model.User{
		{Name: "John Doe", Email: "john@example.com", Password: "x", Role: "patient"},
		{Name: "Jane Roe", Email: "jane@example.com", Password: "x", Role: "patient"},
		{Name: "Dr. John Smith", Email: "smith@example.com", Password: "x", Role: "staff"},
	}
	for i := range seed {
		_, err := users.CreateUser(&seed[i])
		require.NoError(t, err)
	}

	results, err := svc.Search("john")
	require.NoError(t, err)
	require.Len(t, results, 1, "staff accounts are excluded")
	assert.Equal(t, "john@example.com", results[0].Email)

	results, err = svc.Search("example.com")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Search("")
	require.NoError(t, err)
	assert.Empty(t, results, "blank query returns nothing")
}
