package labdesk

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GinApi interface {
	Run() error
}

// TestType - Lab test category, selects the parameters collected for a lab request
type TestType string

const (
	BloodTest          TestType = "BLOOD_TEST"
	UrineTest          TestType = "URINE_TEST"
	LiverFunctionTest  TestType = "LIVER_FUNCTION_TEST"
	KidneyFunctionTest TestType = "KIDNEY_FUNCTION_TEST"
	ECG                TestType = "ECG"
	XRay               TestType = "XRAY"
	MRI                TestType = "MRI"
)

func (t TestType) String() string {
	return string(t)
}

type ResultStatus string

const (
	// ResultStatusNone is used for text parameters and values that are not numeric
	ResultStatusNone   ResultStatus = ""
	ResultStatusLow    ResultStatus = "LOW"
	ResultStatusNormal ResultStatus = "NORMAL"
	ResultStatusHigh   ResultStatus = "HIGH"
)

// ParameterDefinition - A single measurement or finding of a test type. Low and High are either both set or both nil.
type ParameterDefinition struct {
	Name   string   `json:"name"`
	Unit   string   `json:"unit"`
	Low    *float64 `json:"low"`
	High   *float64 `json:"high"`
	IsText bool     `json:"isText"`
}

// ResultEntry - One entered (or decoded) parameter value with its classification
type ResultEntry struct {
	Parameter string       `json:"parameter"`
	Value     string       `json:"value"`
	Unit      string       `json:"unit"`
	Low       *float64     `json:"low"`
	High      *float64     `json:"high"`
	Status    ResultStatus `json:"status"`
}

type LabRequestStatus string

const (
	LabRequestStatusPending    LabRequestStatus = "PENDING"
	LabRequestStatusProcessing LabRequestStatus = "PROCESSING"
	LabRequestStatusCompleted  LabRequestStatus = "COMPLETED"
)

// LabRequest - Lab test request as owned by the hospital backend. Timestamps are kept in the backend format.
type LabRequest struct {
	ID          int              `json:"id"`
	TestType    TestType         `json:"testType"`
	Remarks     string           `json:"remarks"`
	Status      LabRequestStatus `json:"status"`
	RequestedAt string           `json:"requestedAt"`
	ProcessedAt *string          `json:"processedAt"`
	PatientName string           `json:"patientName"`
	DoctorName  string           `json:"doctorName"`
	Result      *StoredResult    `json:"result,omitempty"`
}

// StoredResult - The persisted result of a completed lab request. ResultDetails holds the encoded entries.
type StoredResult struct {
	ID            int      `json:"id"`
	ResultDetails string   `json:"resultDetails"`
	CreatedAt     string   `json:"createdAt"`
	LabRequestID  int      `json:"labRequestId"`
	Bill          *LabBill `json:"bill"`
}

// LabBill - Bill generated by the backend when a result is submitted
type LabBill struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"createdAt"`
}

type LabForm struct {
	Request    LabRequest            `json:"request"`
	Parameters []ParameterDefinition `json:"parameters"`
	Entries    []ResultEntry         `json:"entries"`
	Restored   bool                  `json:"restored"`
}

type ReportEntry struct {
	ResultEntry
	NormalRange string `json:"normalRange"`
}

type LabReport struct {
	RequestID   int           `json:"requestId"`
	PatientName string        `json:"patientName"`
	DoctorName  string        `json:"doctorName"`
	TestType    TestType      `json:"testType"`
	Remarks     string        `json:"remarks"`
	ProcessedAt *string       `json:"processedAt"`
	CreatedAt   string        `json:"createdAt"`
	Bill        *LabBill      `json:"bill"`
	Entries     []ReportEntry `json:"entries"`
	NoData      bool          `json:"noData"`
}

type SubmissionReceipt struct {
	Message  string `json:"message"`
	ResultID int    `json:"resultId"`
	BillID   int    `json:"billId"`
}

type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionStatusFailed    SubmissionStatus = "FAILED"
)

// Submission - Local journal entry of a result submission attempt against the backend
type Submission struct {
	ID            uuid.UUID        `json:"id"`
	LabRequestID  int              `json:"labRequestId"`
	TestType      TestType         `json:"testType"`
	Username      string           `json:"username"`
	Status        SubmissionStatus `json:"status"`
	ResultDetails string           `json:"resultDetails"`
	ResultID      *int             `json:"resultId"`
	BillID        *int             `json:"billId"`
	Error         *string          `json:"error"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// Draft - Unsubmitted form values of a lab request, kept per session
type Draft struct {
	TestType  TestType          `json:"testType"`
	Values    map[string]string `json:"values"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
