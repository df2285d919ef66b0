package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the repositories translate into domain errors.
const (
	codeUniqueViolation           = "23505"
	codeInvalidTextRepresentation = "22P02"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

// isMalformedID reports a UUID column compared against text that is not a UUID.
// Such an id cannot match any row.
func isMalformedID(err error) bool {
	return pqCode(err) == codeInvalidTextRepresentation
}
