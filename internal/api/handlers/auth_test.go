package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/nat/todo-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_SignUp(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful signup",
			request: map[string]string{
				"nationalId": "1111111111111",
				"password":   "pw",
				"title":      "Mr",
				"firstName":  "A",
				"lastName":   "B",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.SignUpResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotZero(t, result.ID)
			},
		},
		{
			name: "missing national id",
			request: map[string]string{
				"password":  "pw",
				"title":     "Mr",
				"firstName": "A",
				"lastName":  "B",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			request: map[string]string{
				"nationalId": "1111111111111",
				"title":      "Mr",
				"firstName":  "A",
				"lastName":   "B",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "national id of the wrong length",
			request: map[string]string{
				"nationalId": "12345",
				"password":   "pw",
				"title":      "Mr",
				"firstName":  "A",
				"lastName":   "B",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate national id",
			request: map[string]string{
				"nationalId": "2222222222222",
				"password":   "pw",
				"title":      "Mr",
				"firstName":  "A",
				"lastName":   "B",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithNationalID("2222222222222").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.URL("/users"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_IssueToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithNationalID("3333333333333").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login",
			request: map[string]string{
				"nationalId": user.NationalID,
				"password":   rawPassword,
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.TokenResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotEmpty(t, result.Token)

				claims, err := ts.Services.Auth.ValidateToken(result.Token)
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
			},
		},
		{
			name: "wrong password",
			request: map[string]string{
				"nationalId": user.NationalID,
				"password":   "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown national id",
			request: map[string]string{
				"nationalId": "9999999999999",
				"password":   "anypassword",
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "missing password",
			request: map[string]string{
				"nationalId": user.NationalID,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.URL("/tokens"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestUserHandler_GetByID(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithName("Ms", "Jane", "Doe").
		Build(t, ts.DB.DB)

	resp, err := http.Get(ts.URL(fmt.Sprintf("/users/%d", user.ID)))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		ID        uint   `json:"id"`
		Title     string `json:"title"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, user.ID, result.ID)
	assert.Equal(t, "Jane", result.FirstName)

	resp, err = http.Get(ts.URL(fmt.Sprintf("/users/%d", user.ID+1000)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserHandler_GetByID_NeverExposesSecrets(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	resp, err := http.Get(ts.URL(fmt.Sprintf("/users/%d", user.ID)))
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]interface{}
	testutil.AssertJSONResponse(t, resp, &raw)
	assert.NotContains(t, raw, "salt")
	assert.NotContains(t, raw, "passwordHash")
}
