package db

import (
	"errors"
)

const (
	MsgDbConnectionNotAvailable  = "database connection not available"
	MsgBeginTransactionFailed    = "begin transaction failed"
	MsgCommitTransactionFailed   = "commit transaction failed"
	MsgRollbackTransactionFailed = "revert transaction failed"
)

var (
	ErrDbConnectionNotAvailable  = errors.New(MsgDbConnectionNotAvailable)
	ErrBeginTransactionFailed    = errors.New(MsgBeginTransactionFailed)
	ErrCommitTransactionFailed   = errors.New(MsgCommitTransactionFailed)
	ErrRollbackTransactionFailed = errors.New(MsgRollbackTransactionFailed)
)
