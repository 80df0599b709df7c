package audit

import "errors"

var (
	ErrStoreFailed    = errors.New("audit: failed to store record")
	ErrRecordNotFound = errors.New("audit: record not found")
	ErrMigrateFailed  = errors.New("audit: failed to run migration")
)
