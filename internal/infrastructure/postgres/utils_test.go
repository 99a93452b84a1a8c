package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Los conflictos de concurrencia de Postgres (serialización, deadlock, lock no
// disponible) se traducen al error de dominio; todo lo demás pasa sin tocar.
func TestMapConcurrencyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"serialization_failure", &pgconn.PgError{Code: "40001"}, domain.ErrConcurrentModification},
		{"deadlock_detected", &pgconn.PgError{Code: "40P01"}, domain.ErrConcurrentModification},
		{"lock_not_available", &pgconn.PgError{Code: "55P03"}, domain.ErrConcurrentModification},
		{
			"envuelto con contexto",
			fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40001"}),
			domain.ErrConcurrentModification,
		},
		{"unique_violation no es concurrencia", &pgconn.PgError{Code: "23505"}, nil},
		{"error cualquiera pasa sin tocar", errors.New("conexión perdida"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapConcurrencyError(tc.err)
			if tc.want != nil {
				assert.ErrorIs(t, got, tc.want)
			} else {
				assert.Equal(t, tc.err, got, "el error original se devuelve intacto")
			}
		})
	}
}

func TestMapConcurrencyError_Nil(t *testing.T) {
	assert.NoError(t, mapConcurrencyError(nil))
}
