package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeUpdateRequest_Presence(t *testing.T) {
	var req EmployeeUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Ada","superiorId":null,"phone":""}`), &req))

	assert.True(t, req.FirstName.Set)
	assert.Equal(t, "Ada", *req.FirstName.Ptr())

	assert.True(t, req.SuperiorID.Set)
	assert.True(t, req.SuperiorID.Null)
	assert.Nil(t, req.SuperiorID.Ptr())

	assert.True(t, req.Phone.Set)
	assert.Equal(t, "", *req.Phone.Ptr())

	assert.False(t, req.LastName.Set)
	assert.False(t, req.Department.Set)
	assert.Empty(t, req.NullRequiredFields())
}

func TestEmployeeUpdateRequest_NullRequired(t *testing.T) {
	var req EmployeeUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":null,"lastName":null}`), &req))
	assert.Equal(t, []string{"lastName", "email"}, req.NullRequiredFields())
}
