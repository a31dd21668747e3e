package labdesk

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blutspende/labdesk/db"
	"github.com/blutspende/labdesk/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var submissionSortColumns = map[string]string{
	"createdAt": "created_at",
	"status":    "status",
	"username":  "username",
}

type submissionDAO struct {
	ID            uuid.UUID      `db:"id"`
	LabRequestID  int            `db:"lab_request_id"`
	TestType      string         `db:"test_type"`
	Username      string         `db:"username"`
	Status        string         `db:"status"`
	ResultDetails string         `db:"result_details"`
	ResultID      sql.NullInt64  `db:"result_id"`
	BillID        sql.NullInt64  `db:"bill_id"`
	Error         sql.NullString `db:"error"`
	CreatedAt     time.Time      `db:"created_at"`
}

// SubmissionRepository - journal of the result submissions sent to the hospital backend
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission Submission) (uuid.UUID, error)
	GetSubmissionsByLabRequestID(ctx context.Context, labRequestID int, pageable Pageable) ([]Submission, int, error)
}

type submissionRepository struct {
	db       db.DbConnector
	dbSchema string
}

func NewSubmissionRepository(db db.DbConnector, dbSchema string) SubmissionRepository {
	return &submissionRepository{
		db:       db,
		dbSchema: dbSchema,
	}
}

func (r *submissionRepository) CreateSubmission(ctx context.Context, submission Submission) (uuid.UUID, error) {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`INSERT INTO %s.ld_submissions(id, lab_request_id, test_type, username, status, result_details, result_id, bill_id, error, created_at)
		VALUES(:id, :lab_request_id, :test_type, :username, :status, :result_details, :result_id, :bill_id, :error, :created_at);`, r.dbSchema)

	_, err := r.db.NamedExecContext(ctx, query, convertSubmissionToDAO(submission))
	if err != nil {
		log.Error().Err(err).Int("labRequestId", submission.LabRequestID).Msg(MsgCreateSubmissionFailed)
		return uuid.Nil, ErrCreateSubmissionFailed
	}
	return submission.ID, nil
}

// GetSubmissionsByLabRequestID reads the page and the total count in one transaction so both agree
func (r *submissionRepository) GetSubmissionsByLabRequestID(ctx context.Context, labRequestID int, pageable Pageable) ([]Submission, int, error) {
	tx, err := r.db.CreateTransactionConnector()
	if err != nil {
		log.Error().Err(err).Int("labRequestId", labRequestID).Msg(MsgGetSubmissionsFailed)
		return nil, 0, ErrGetSubmissionsFailed
	}

	submissions, count, err := r.getSubmissionsByLabRequestID(ctx, tx, labRequestID, pageable)
	if err != nil {
		_ = tx.Rollback()
		return nil, 0, err
	}
	if err = tx.Commit(); err != nil {
		return nil, 0, ErrGetSubmissionsFailed
	}
	return submissions, count, nil
}

func (r *submissionRepository) getSubmissionsByLabRequestID(ctx context.Context, tx db.DbConnector, labRequestID int, pageable Pageable) ([]Submission, int, error) {
	query := fmt.Sprintf(`SELECT * FROM %s.ld_submissions WHERE lab_request_id = $1`, r.dbSchema)
	query += applyPagination(pageable, submissionSortColumns, "created_at DESC, id") + `;`

	rows, err := tx.QueryxContext(ctx, query, labRequestID)
	if err != nil {
		log.Error().Err(err).Int("labRequestId", labRequestID).Msg(MsgGetSubmissionsFailed)
		return nil, 0, ErrGetSubmissionsFailed
	}
	defer rows.Close()

	submissions := make([]Submission, 0)
	for rows.Next() {
		var dao submissionDAO
		if err = rows.StructScan(&dao); err != nil {
			log.Error().Err(err).Int("labRequestId", labRequestID).Msg(MsgGetSubmissionsFailed)
			return nil, 0, ErrGetSubmissionsFailed
		}
		submissions = append(submissions, convertSubmissionDAOToSubmission(dao))
	}
	if err = rows.Err(); err != nil {
		log.Error().Err(err).Int("labRequestId", labRequestID).Msg(MsgGetSubmissionsFailed)
		return nil, 0, ErrGetSubmissionsFailed
	}
	rows.Close()

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s.ld_submissions WHERE lab_request_id = $1;`, r.dbSchema)
	var count int
	if err = tx.QueryRowxContext(ctx, countQuery, labRequestID).Scan(&count); err != nil {
		log.Error().Err(err).Int("labRequestId", labRequestID).Msg(MsgGetSubmissionsFailed)
		return nil, 0, ErrGetSubmissionsFailed
	}

	return submissions, count, nil
}

func convertSubmissionToDAO(submission Submission) submissionDAO {
	return submissionDAO{
		ID:            submission.ID,
		LabRequestID:  submission.LabRequestID,
		TestType:      submission.TestType.String(),
		Username:      submission.Username,
		Status:        string(submission.Status),
		ResultDetails: submission.ResultDetails,
		ResultID:      utils.IntPointerToSqlNullInt64(submission.ResultID),
		BillID:        utils.IntPointerToSqlNullInt64(submission.BillID),
		Error:         utils.StringPointerToSqlNullString(submission.Error),
		CreatedAt:     submission.CreatedAt,
	}
}

func convertSubmissionDAOToSubmission(dao submissionDAO) Submission {
	return Submission{
		ID:            dao.ID,
		LabRequestID:  dao.LabRequestID,
		TestType:      TestType(dao.TestType),
		Username:      dao.Username,
		Status:        SubmissionStatus(dao.Status),
		ResultDetails: dao.ResultDetails,
		ResultID:      utils.SqlNullInt64ToIntPointer(dao.ResultID),
		BillID:        utils.SqlNullInt64ToIntPointer(dao.BillID),
		Error:         utils.SqlNullStringToStringPointer(dao.Error),
		CreatedAt:     dao.CreatedAt,
	}
}
