package labdesk

import (
	"context"
	"errors"
	"time"

	"github.com/blutspende/labdesk/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type LabResultService interface {
	GetPendingLabRequests(ctx context.Context, session middleware.Session) ([]LabRequest, error)
	GetCompletedLabRequests(ctx context.Context, session middleware.Session) ([]LabRequest, error)
	OpenLabForm(ctx context.Context, session middleware.Session, requestID int) (LabForm, error)
	PreviewLabForm(testType TestType, values map[string]string) ([]ResultEntry, error)
	SaveDraft(ctx context.Context, session middleware.Session, requestID int, testType TestType, values map[string]string) error
	SubmitLabResult(ctx context.Context, session middleware.Session, requestID int, testType TestType, values map[string]string) (SubmissionReceipt, error)
	GetLabReport(ctx context.Context, session middleware.Session, requestID int) (LabReport, error)
	GetSubmissionHistory(ctx context.Context, requestID int, pageable Pageable) (Page, error)
}

type labResultService struct {
	hospitalClient       HospitalClient
	draftStore           DraftStore
	submissionRepository SubmissionRepository
	now                  func() time.Time
}

func NewLabResultService(hospitalClient HospitalClient, draftStore DraftStore, submissionRepository SubmissionRepository) LabResultService {
	return &labResultService{
		hospitalClient:       hospitalClient,
		draftStore:           draftStore,
		submissionRepository: submissionRepository,
		now:                  time.Now,
	}
}

func (s *labResultService) GetPendingLabRequests(ctx context.Context, session middleware.Session) ([]LabRequest, error) {
	return s.hospitalClient.GetPendingLabRequests(ctx, session.AccessToken)
}

func (s *labResultService) GetCompletedLabRequests(ctx context.Context, session middleware.Session) ([]LabRequest, error) {
	return s.hospitalClient.GetCompletedLabRequests(ctx, session.AccessToken)
}

// OpenLabForm builds a fresh form for the pending request and puts a saved draft of the same test type back onto it
func (s *labResultService) OpenLabForm(ctx context.Context, session middleware.Session, requestID int) (LabForm, error) {
	labRequest, err := s.hospitalClient.GetPendingLabRequest(ctx, session.AccessToken, requestID)
	if err != nil {
		return LabForm{}, err
	}

	form := InitializeForm(labRequest.TestType)
	restored := false

	draft, err := s.draftStore.GetDraft(ctx, session.ID, requestID)
	switch {
	case err == nil && draft.TestType == labRequest.TestType:
		for name, value := range draft.Values {
			if !form.Set(name, value) {
				log.Warn().Int("requestId", requestID).Str("parameter", name).Msg("dropping draft value of unknown parameter")
			}
		}
		restored = true
	case err == nil:
		log.Warn().Int("requestId", requestID).
			Str("draftTestType", draft.TestType.String()).
			Str("requestTestType", labRequest.TestType.String()).
			Msg("ignoring draft of another test type")
	case !errors.Is(err, ErrDraftNotFound):
		log.Warn().Err(err).Int("requestId", requestID).Msg("draft could not be loaded, starting with a blank form")
	}

	return LabForm{
		Request:    labRequest,
		Parameters: form.Parameters(),
		Entries:    form.Entries(),
		Restored:   restored,
	}, nil
}

func (s *labResultService) PreviewLabForm(testType TestType, values map[string]string) ([]ResultEntry, error) {
	form, err := buildForm(testType, values)
	if err != nil {
		return nil, err
	}
	return form.Entries(), nil
}

func (s *labResultService) SaveDraft(ctx context.Context, session middleware.Session, requestID int, testType TestType, values map[string]string) error {
	form, err := buildForm(testType, values)
	if err != nil {
		return err
	}
	if err = s.checkDraftTestType(ctx, session.ID, requestID, testType); err != nil {
		return err
	}
	return s.saveDraft(ctx, session.ID, requestID, form)
}

// SubmitLabResult validates locally before the backend is called, a form with a missing value never leaves the service.
// The values are only sent when their test type is the one of the pending request.
// Every attempt that reached the backend is journaled, a failing journal does not fail the submission.
func (s *labResultService) SubmitLabResult(ctx context.Context, session middleware.Session, requestID int, testType TestType, values map[string]string) (SubmissionReceipt, error) {
	form, err := buildForm(testType, values)
	if err != nil {
		return SubmissionReceipt{}, err
	}
	if err = s.checkDraftTestType(ctx, session.ID, requestID, testType); err != nil {
		return SubmissionReceipt{}, err
	}

	resultDetails, err := EncodeResultDetails(form)
	if err != nil {
		if draftErr := s.saveDraft(ctx, session.ID, requestID, form); draftErr != nil {
			log.Warn().Err(draftErr).Int("requestId", requestID).Msg("draft of invalid form not saved")
		}
		return SubmissionReceipt{}, err
	}

	labRequest, err := s.hospitalClient.GetPendingLabRequest(ctx, session.AccessToken, requestID)
	if err != nil {
		log.Error().Err(err).Int("requestId", requestID).Msg("pending lab request could not be fetched before submitting")
		if draftErr := s.saveDraft(ctx, session.ID, requestID, form); draftErr != nil {
			log.Warn().Err(draftErr).Int("requestId", requestID).Msg("draft of unsent result not saved")
		}
		return SubmissionReceipt{}, err
	}
	if labRequest.TestType != testType {
		log.Warn().Int("requestId", requestID).
			Str("requestTestType", labRequest.TestType.String()).
			Str("testType", testType.String()).
			Msg(MsgTestTypeMismatch)
		return SubmissionReceipt{}, ErrTestTypeMismatch
	}

	receipt, err := s.hospitalClient.SubmitProcessedResult(ctx, session.AccessToken, requestID, resultDetails)
	if err != nil {
		log.Error().Err(err).Int("requestId", requestID).Msg("submitting lab result failed")
		if draftErr := s.saveDraft(ctx, session.ID, requestID, form); draftErr != nil {
			log.Warn().Err(draftErr).Int("requestId", requestID).Msg("draft of failed submission not saved")
		}
		s.journal(ctx, Submission{
			LabRequestID:  requestID,
			TestType:      testType,
			Username:      session.User.Username,
			Status:        SubmissionStatusFailed,
			ResultDetails: resultDetails,
			Error:         stringPointerOrNil(err.Error()),
		})
		return SubmissionReceipt{}, err
	}

	if err = s.draftStore.DeleteDraft(ctx, session.ID, requestID); err != nil {
		log.Warn().Err(err).Int("requestId", requestID).Msg("draft of submitted result not deleted")
	}
	s.journal(ctx, Submission{
		LabRequestID:  requestID,
		TestType:      testType,
		Username:      session.User.Username,
		Status:        SubmissionStatusSubmitted,
		ResultDetails: resultDetails,
		ResultID:      ptr(receipt.ResultID),
		BillID:        ptr(receipt.BillID),
	})

	log.Info().Int("requestId", requestID).Int("resultId", receipt.ResultID).Int("billId", receipt.BillID).Msg("lab result submitted")
	return receipt, nil
}

// GetLabReport decodes the stored result details of a completed request. Statuses are computed again, the stored ones are not trusted.
func (s *labResultService) GetLabReport(ctx context.Context, session middleware.Session, requestID int) (LabReport, error) {
	labRequest, err := s.hospitalClient.GetCompletedLabRequest(ctx, session.AccessToken, session.User.Role, requestID)
	if err != nil {
		return LabReport{}, err
	}

	report := LabReport{
		RequestID:   labRequest.ID,
		PatientName: labRequest.PatientName,
		DoctorName:  labRequest.DoctorName,
		TestType:    labRequest.TestType,
		Remarks:     labRequest.Remarks,
		ProcessedAt: labRequest.ProcessedAt,
		Entries:     []ReportEntry{},
	}
	if labRequest.Result == nil {
		report.NoData = true
		return report, nil
	}

	report.CreatedAt = labRequest.Result.CreatedAt
	report.Bill = labRequest.Result.Bill
	for _, entry := range DecodeResultDetails(labRequest.Result.ResultDetails) {
		report.Entries = append(report.Entries, ReportEntry{
			ResultEntry: entry,
			NormalRange: formatRange(entry.Low, entry.High),
		})
	}
	report.NoData = len(report.Entries) == 0
	return report, nil
}

func (s *labResultService) GetSubmissionHistory(ctx context.Context, requestID int, pageable Pageable) (Page, error) {
	submissions, totalCount, err := s.submissionRepository.GetSubmissionsByLabRequestID(ctx, requestID, pageable)
	if err != nil {
		return Page{}, err
	}
	return NewPage(pageable, totalCount, submissions), nil
}

func (s *labResultService) checkDraftTestType(ctx context.Context, sessionID uuid.UUID, requestID int, testType TestType) error {
	draft, err := s.draftStore.GetDraft(ctx, sessionID, requestID)
	if err != nil {
		// no draft, nothing to compare
		return nil
	}
	if draft.TestType != testType {
		log.Warn().Int("requestId", requestID).
			Str("draftTestType", draft.TestType.String()).
			Str("testType", testType.String()).
			Msg(MsgTestTypeMismatch)
		return ErrTestTypeMismatch
	}
	return nil
}

func (s *labResultService) saveDraft(ctx context.Context, sessionID uuid.UUID, requestID int, form FormState) error {
	return s.draftStore.SaveDraft(ctx, sessionID, requestID, Draft{
		TestType:  form.TestType(),
		Values:    form.Values(),
		UpdatedAt: s.now().UTC(),
	})
}

func (s *labResultService) journal(ctx context.Context, submission Submission) {
	submission.CreatedAt = s.now().UTC()
	if _, err := s.submissionRepository.CreateSubmission(ctx, submission); err != nil {
		log.Error().Err(err).Int("requestId", submission.LabRequestID).Msg("journal entry of submission is lost")
	}
}

func buildForm(testType TestType, values map[string]string) (FormState, error) {
	if !testType.IsKnown() {
		return FormState{}, ErrUnknownTestType
	}
	form := InitializeForm(testType)
	if name, ok := form.Apply(values); !ok {
		return FormState{}, &UnknownParameterError{TestType: testType, Parameter: name}
	}
	return form, nil
}
