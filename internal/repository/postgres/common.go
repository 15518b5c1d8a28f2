package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	ierr "github.com/chethandvg/tenantmanagement/internal/errors"
)

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// requireRowAffected converts a zero-row optimistic update into a version
// conflict. The caller's version token was stale or the row is gone; either
// way the caller must re-read before retrying.
func requireRowAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to read affected row count").
			Mark(ierr.ErrDatabase)
	}
	if n == 0 {
		return ierr.NewError(entity + " was modified concurrently").
			WithHintf("Reload the %s and retry the operation", entity).
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrVersionConflict)
	}
	return nil
}
