package labdesk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/blutspende/labdesk/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// HospitalClient - access to the hospital backend that owns users, lab requests, results and bills
type HospitalClient interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	GetPendingLabRequests(ctx context.Context, accessToken string) ([]LabRequest, error)
	GetPendingLabRequest(ctx context.Context, accessToken string, requestID int) (LabRequest, error)
	GetCompletedLabRequests(ctx context.Context, accessToken string) ([]LabRequest, error)
	GetCompletedLabRequest(ctx context.Context, accessToken string, role middleware.UserRole, requestID int) (LabRequest, error)
	SubmitProcessedResult(ctx context.Context, accessToken string, requestID int, resultDetails string) (SubmissionReceipt, error)
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         middleware.SessionUser
}

type hospitalClient struct {
	client      *resty.Client
	hospitalUrl string
}

type detailResponseTO struct {
	Detail string `json:"detail"`
}

type loginRequestTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUserTO struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type loginResponseTO struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    loginUserTO `json:"user"`
}

type billTO struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}

type labResultTO struct {
	ID            int     `json:"id"`
	ResultDetails string  `json:"result_details"`
	CreatedAt     string  `json:"created_at"`
	LabRequest    int     `json:"lab_request"`
	Bill          *billTO `json:"bill"`
}

type labRequestTO struct {
	ID          int          `json:"id"`
	TestType    string       `json:"test_type"`
	Remarks     *string      `json:"remarks"`
	Status      string       `json:"status"`
	RequestedAt string       `json:"requested_at"`
	ProcessedAt *string      `json:"processed_at"`
	PatientName string       `json:"patient_name"`
	DoctorName  string       `json:"doctor_name"`
	Result      *labResultTO `json:"result"`
}

type processResultRequestTO struct {
	ResultDetails string `json:"result_details"`
}

type processResultResponseTO struct {
	Message  string `json:"message"`
	ResultID int    `json:"result_id"`
	BillID   int    `json:"bill_id"`
}

func NewHospitalClient(hospitalUrl string, restyClient *resty.Client) (HospitalClient, error) {
	if hospitalUrl == "" {
		return nil, fmt.Errorf("basepath for the hospital backend must be set. check your configuration for HospitalAPIURL")
	}

	return &hospitalClient{
		client:      restyClient,
		hospitalUrl: hospitalUrl,
	}, nil
}

func (hc *hospitalClient) Login(ctx context.Context, username, password string) (LoginResult, error) {
	resp, err := hc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequestTO{Username: username, Password: password}).
		Post(hc.hospitalUrl + "/login/")
	if err != nil {
		log.Error().Err(err).Msg("Failed to call the hospital backend login")
		return LoginResult{}, errors.Wrap(ErrBackendUnavailable, err.Error())
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusUnauthorized:
		return LoginResult{}, ErrInvalidCredentials
	default:
		return LoginResult{}, backendError(resp)
	}

	var loginResponse loginResponseTO
	if err = json.Unmarshal(resp.Body(), &loginResponse); err != nil {
		log.Error().Err(err).Msg(MsgUnmarshalResponseFailed)
		return LoginResult{}, ErrUnmarshalResponseFailed
	}

	return LoginResult{
		AccessToken:  loginResponse.Access,
		RefreshToken: loginResponse.Refresh,
		User: middleware.SessionUser{
			ID:        loginResponse.User.ID,
			Username:  loginResponse.User.Username,
			FirstName: loginResponse.User.FirstName,
			LastName:  loginResponse.User.LastName,
			Role:      middleware.UserRole(loginResponse.User.Role),
		},
	}, nil
}

func (hc *hospitalClient) GetPendingLabRequests(ctx context.Context, accessToken string) ([]LabRequest, error) {
	return hc.getLabRequests(ctx, accessToken, "/lab/pending/")
}

func (hc *hospitalClient) GetPendingLabRequest(ctx context.Context, accessToken string, requestID int) (LabRequest, error) {
	return hc.getLabRequest(ctx, accessToken, "/lab/pending/"+strconv.Itoa(requestID)+"/")
}

func (hc *hospitalClient) GetCompletedLabRequests(ctx context.Context, accessToken string) ([]LabRequest, error) {
	return hc.getLabRequests(ctx, accessToken, "/lab/completed/")
}

// GetCompletedLabRequest doctors read their results through the doctor route, everyone else through the lab route
func (hc *hospitalClient) GetCompletedLabRequest(ctx context.Context, accessToken string, role middleware.UserRole, requestID int) (LabRequest, error) {
	if role == middleware.Doctor {
		return hc.getLabRequest(ctx, accessToken, "/doctor/lab-results/"+strconv.Itoa(requestID)+"/")
	}
	return hc.getLabRequest(ctx, accessToken, "/lab/completed/"+strconv.Itoa(requestID)+"/")
}

func (hc *hospitalClient) SubmitProcessedResult(ctx context.Context, accessToken string, requestID int, resultDetails string) (SubmissionReceipt, error) {
	resp, err := hc.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("request_id", strconv.Itoa(requestID)).
		SetBody(processResultRequestTO{ResultDetails: resultDetails}).
		Post(hc.hospitalUrl + "/lab/process/")
	if err != nil {
		log.Error().Err(err).Int("requestId", requestID).Msg("Failed to submit the processed result")
		return SubmissionReceipt{}, errors.Wrap(ErrBackendUnavailable, err.Error())
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return SubmissionReceipt{}, backendError(resp)
	}

	var response processResultResponseTO
	if err = json.Unmarshal(resp.Body(), &response); err != nil {
		log.Error().Err(err).Int("requestId", requestID).Msg(MsgUnmarshalResponseFailed)
		return SubmissionReceipt{}, ErrUnmarshalResponseFailed
	}

	return SubmissionReceipt{
		Message:  response.Message,
		ResultID: response.ResultID,
		BillID:   response.BillID,
	}, nil
}

func (hc *hospitalClient) getLabRequests(ctx context.Context, accessToken, path string) ([]LabRequest, error) {
	resp, err := hc.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Get(hc.hospitalUrl + path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to call the hospital backend")
		return nil, errors.Wrap(ErrBackendUnavailable, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, backendError(resp)
	}

	labRequestTOs := make([]labRequestTO, 0)
	if err = json.Unmarshal(resp.Body(), &labRequestTOs); err != nil {
		log.Error().Err(err).Str("path", path).Msg(MsgUnmarshalResponseFailed)
		return nil, ErrUnmarshalResponseFailed
	}

	labRequests := make([]LabRequest, len(labRequestTOs))
	for i := range labRequestTOs {
		labRequests[i] = convertLabRequestTOToLabRequest(labRequestTOs[i])
	}
	return labRequests, nil
}

func (hc *hospitalClient) getLabRequest(ctx context.Context, accessToken, path string) (LabRequest, error) {
	resp, err := hc.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Get(hc.hospitalUrl + path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to call the hospital backend")
		return LabRequest{}, errors.Wrap(ErrBackendUnavailable, err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return LabRequest{}, backendError(resp)
	}

	var labRequest labRequestTO
	if err = json.Unmarshal(resp.Body(), &labRequest); err != nil {
		log.Error().Err(err).Str("path", path).Msg(MsgUnmarshalResponseFailed)
		return LabRequest{}, ErrUnmarshalResponseFailed
	}
	return convertLabRequestTOToLabRequest(labRequest), nil
}

func backendError(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrBackendUnauthorized
	case http.StatusForbidden:
		return ErrBackendForbidden
	case http.StatusNotFound:
		return ErrLabRequestNotFound
	}

	detail := detailResponseTO{}
	if err := json.Unmarshal(resp.Body(), &detail); err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode()).Msg("can not unmarshal error of response")
	}
	log.Error().Int("status", resp.StatusCode()).Str("detail", detail.Detail).Msg(MsgBackendRequestFailed)
	return &BackendError{
		StatusCode: resp.StatusCode(),
		Detail:     detail.Detail,
	}
}

func convertLabRequestTOToLabRequest(to labRequestTO) LabRequest {
	labRequest := LabRequest{
		ID:          to.ID,
		TestType:    TestType(to.TestType),
		Status:      LabRequestStatus(to.Status),
		RequestedAt: to.RequestedAt,
		ProcessedAt: to.ProcessedAt,
		PatientName: to.PatientName,
		DoctorName:  to.DoctorName,
	}
	if to.Remarks != nil {
		labRequest.Remarks = *to.Remarks
	}
	if to.Result != nil {
		labRequest.Result = &StoredResult{
			ID:            to.Result.ID,
			ResultDetails: to.Result.ResultDetails,
			CreatedAt:     to.Result.CreatedAt,
			LabRequestID:  to.Result.LabRequest,
		}
		if to.Result.Bill != nil {
			labRequest.Result.Bill = &LabBill{
				ID:          to.Result.Bill.ID,
				Amount:      to.Result.Bill.Amount,
				Description: to.Result.Bill.Description,
				CreatedAt:   to.Result.Bill.CreatedAt,
			}
		}
	}
	return labRequest
}
