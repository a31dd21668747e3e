package labdesk

import (
	"context"
	"errors"

	"github.com/blutspende/labdesk/middleware"
	"github.com/google/uuid"
)

type hospitalClientMock struct {
	loginFunc                   func(username, password string) (LoginResult, error)
	getPendingLabRequestsFunc   func(accessToken string) ([]LabRequest, error)
	getPendingLabRequestFunc    func(accessToken string, requestID int) (LabRequest, error)
	getCompletedLabRequestsFunc func(accessToken string) ([]LabRequest, error)
	getCompletedLabRequestFunc  func(accessToken string, role middleware.UserRole, requestID int) (LabRequest, error)
	submitProcessedResultFunc   func(accessToken string, requestID int, resultDetails string) (SubmissionReceipt, error)

	SubmittedResultDetails []string
	PendingFetches         int
}

func pendingLabRequestOf(testType TestType) func(accessToken string, requestID int) (LabRequest, error) {
	return func(accessToken string, requestID int) (LabRequest, error) {
		return LabRequest{ID: requestID, TestType: testType, Status: LabRequestStatusPending}, nil
	}
}

func (m *hospitalClientMock) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if m.loginFunc == nil {
		return LoginResult{}, errors.New("not implemented")
	}
	return m.loginFunc(username, password)
}

func (m *hospitalClientMock) GetPendingLabRequests(ctx context.Context, accessToken string) ([]LabRequest, error) {
	if m.getPendingLabRequestsFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getPendingLabRequestsFunc(accessToken)
}

func (m *hospitalClientMock) GetPendingLabRequest(ctx context.Context, accessToken string, requestID int) (LabRequest, error) {
	m.PendingFetches++
	if m.getPendingLabRequestFunc == nil {
		return LabRequest{}, errors.New("not implemented")
	}
	return m.getPendingLabRequestFunc(accessToken, requestID)
}

func (m *hospitalClientMock) GetCompletedLabRequests(ctx context.Context, accessToken string) ([]LabRequest, error) {
	if m.getCompletedLabRequestsFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getCompletedLabRequestsFunc(accessToken)
}

func (m *hospitalClientMock) GetCompletedLabRequest(ctx context.Context, accessToken string, role middleware.UserRole, requestID int) (LabRequest, error) {
	if m.getCompletedLabRequestFunc == nil {
		return LabRequest{}, errors.New("not implemented")
	}
	return m.getCompletedLabRequestFunc(accessToken, role, requestID)
}

func (m *hospitalClientMock) SubmitProcessedResult(ctx context.Context, accessToken string, requestID int, resultDetails string) (SubmissionReceipt, error) {
	m.SubmittedResultDetails = append(m.SubmittedResultDetails, resultDetails)
	if m.submitProcessedResultFunc == nil {
		return SubmissionReceipt{}, errors.New("not implemented")
	}
	return m.submitProcessedResultFunc(accessToken, requestID, resultDetails)
}

type submissionRepositoryMock struct {
	createSubmissionFunc func(submission Submission) (uuid.UUID, error)

	Submissions []Submission
}

func (m *submissionRepositoryMock) CreateSubmission(ctx context.Context, submission Submission) (uuid.UUID, error) {
	m.Submissions = append(m.Submissions, submission)
	if m.createSubmissionFunc == nil {
		return uuid.New(), nil
	}
	return m.createSubmissionFunc(submission)
}

func (m *submissionRepositoryMock) GetSubmissionsByLabRequestID(ctx context.Context, labRequestID int, pageable Pageable) ([]Submission, int, error) {
	submissions := make([]Submission, 0)
	for _, submission := range m.Submissions {
		if submission.LabRequestID == labRequestID {
			submissions = append(submissions, submission)
		}
	}
	return submissions, len(submissions), nil
}
