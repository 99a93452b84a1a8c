package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// isSerializationFailure detecta conflictos de concurrencia de Postgres:
// 40001 serialization_failure, 40P01 deadlock_detected, 55P03 lock_not_available.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

// mapConcurrencyError traduce conflictos de serialización al error de dominio
// para que el llamador pueda reintentar la operación completa.
func mapConcurrencyError(err error) error {
	if err == nil {
		return nil
	}
	if isSerializationFailure(err) {
		return domain.ErrConcurrentModification
	}
	return err
}
