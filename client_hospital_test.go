package labdesk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blutspende/labdesk/config"
	"github.com/blutspende/labdesk/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHospitalClient(t *testing.T, handler http.HandlerFunc) HospitalClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHospitalClient(server.URL+"/api", NewRestyClient(&config.Configuration{StandardAPIClientTimeoutSeconds: 5}, false))
	require.Nil(t, err)
	return client
}

func TestNewHospitalClientWithoutUrl(t *testing.T) {
	client, err := NewHospitalClient("", resty.New())
	assert.Nil(t, client)
	assert.NotNil(t, err)
}

func TestLogin(t *testing.T) {
	client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login/", r.URL.Path)

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "lab1", body["username"])
		assert.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access":"acc","refresh":"ref","user":{"id":7,"username":"lab1","first_name":"Ada","last_name":"Lab","role":"LAB_TECHNICIAN"}}`)
	})

	result, err := client.Login(context.TODO(), "lab1", "secret")
	require.Nil(t, err)
	assert.Equal(t, "acc", result.AccessToken)
	assert.Equal(t, "ref", result.RefreshToken)
	assert.Equal(t, 7, result.User.ID)
	assert.Equal(t, "Ada", result.User.FirstName)
	assert.Equal(t, middleware.LabTechnician, result.User.Role)
}

func TestLoginWithWrongCredentials(t *testing.T) {
	client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"No active account found with the given credentials"}`)
	})

	_, err := client.Login(context.TODO(), "lab1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetPendingLabRequests(t *testing.T) {
	client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lab/pending/", r.URL.Path)
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"id":1,"test_type":"BLOOD_TEST","remarks":null,"status":"PENDING","requested_at":"2024-05-01 10:15","processed_at":null,"patient_name":"Jane Roe","doctor_name":"John Doe"},
			{"id":2,"test_type":"ECG","remarks":"fasting","status":"PENDING","requested_at":"2024-05-01 11:00","processed_at":null,"patient_name":"Max Muster","doctor_name":"John Doe"}
		]`)
	})

	labRequests, err := client.GetPendingLabRequests(context.TODO(), "acc")
	require.Nil(t, err)
	require.Len(t, labRequests, 2)
	assert.Equal(t, BloodTest, labRequests[0].TestType)
	assert.Equal(t, "", labRequests[0].Remarks)
	assert.Nil(t, labRequests[0].ProcessedAt)
	assert.Equal(t, "fasting", labRequests[1].Remarks)
	assert.Equal(t, LabRequestStatusPending, labRequests[1].Status)
	assert.Equal(t, "2024-05-01 11:00", labRequests[1].RequestedAt)
}

func TestGetPendingLabRequestNotFound(t *testing.T) {
	client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lab/pending/42/", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	})

	_, err := client.GetPendingLabRequest(context.TODO(), "acc", 42)
	assert.ErrorIs(t, err, ErrLabRequestNotFound)
}

func TestGetCompletedLabRequestUsesRoleRoute(t *testing.T) {
	var paths []string
	client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = io.WriteString(w, `{"id":3,"test_type":"URINE_TEST","status":"COMPLETED","requested_at":"2024-05-01 10:15","processed_at":"2024-05-02 08:30","patient_name":"Jane Roe","doctor_name":"John Doe",
			"result":{"id":11,"result_details":"[]","created_at":"2024-05-02 08:30","lab_request":3,
				"bill":{"id":5,"patient_name":"Jane Roe","amount":"500.00","description":"Lab Test: URINE_TEST","created_at":"2024-05-02 08:30"}}}`)
	})

	labRequest, err := client.GetCompletedLabRequest(context.TODO(), "acc", middleware.Doctor, 3)
	require.Nil(t, err)
	_, err = client.GetCompletedLabRequest(context.TODO(), "acc", middleware.LabTechnician, 3)
	require.Nil(t, err)

	assert.Equal(t, []string{"/api/doctor/lab-results/3/", "/api/lab/completed/3/"}, paths)
	require.NotNil(t, labRequest.Result)
	assert.Equal(t, "[]", labRequest.Result.ResultDetails)
	assert.Equal(t, 3, labRequest.Result.LabRequestID)
	require.NotNil(t, labRequest.Result.Bill)
	assert.True(t, decimal.RequireFromString("500").Equal(labRequest.Result.Bill.Amount))
	assert.Equal(t, "2024-05-02 08:30", *labRequest.ProcessedAt)
}

func TestSubmitProcessedResult(t *testing.T) {
	client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/lab/process/", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("request_id"))

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, `[{"parameter":"Heart Rate","value":"72"}]`, body["result_details"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"Result saved & Bill generated!","result_id":21,"bill_id":34}`)
	})

	receipt, err := client.SubmitProcessedResult(context.TODO(), "acc", 9, `[{"parameter":"Heart Rate","value":"72"}]`)
	require.Nil(t, err)
	assert.Equal(t, "Result saved & Bill generated!", receipt.Message)
	assert.Equal(t, 21, receipt.ResultID)
	assert.Equal(t, 34, receipt.BillID)
}

func TestSubmitProcessedResultErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		err    error
	}{
		{name: "already processed", status: http.StatusNotFound, body: `{"detail":"Invalid or already processed request."}`, err: ErrLabRequestNotFound},
		{name: "expired token", status: http.StatusUnauthorized, body: `{"detail":"Given token not valid for any token type"}`, err: ErrBackendUnauthorized},
		{name: "role not allowed", status: http.StatusForbidden, body: `{"detail":"You do not have permission to perform this action."}`, err: ErrBackendForbidden},
		{name: "bad request", status: http.StatusBadRequest, body: `{"detail":"request_id is required"}`, err: ErrBackendRequestFailed},
		{name: "server error", status: http.StatusInternalServerError, body: `<html></html>`, err: ErrBackendRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.SubmitProcessedResult(context.TODO(), "acc", 9, "[]")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBackendErrorCarriesDetail(t *testing.T) {
	client := newTestHospitalClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"request_id is required"}`)
	})

	_, err := client.SubmitProcessedResult(context.TODO(), "acc", 9, "[]")
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Equal(t, "request_id is required", backendErr.Detail)
}

func TestBackendUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewHospitalClient(url, resty.New())
	require.Nil(t, err)

	_, err = client.GetPendingLabRequests(context.TODO(), "acc")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
