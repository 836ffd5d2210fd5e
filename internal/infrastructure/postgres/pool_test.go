package postgres

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/domain"
)

func TestResolveIPv4_Literals(t *testing.T) {
	ip, err := resolveIPv4(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)

	_, err = resolveIPv4(context.Background(), "::1")
	assert.Error(t, err)
}

func TestDatabaseURLWithIPv4(t *testing.T) {
	assert.Equal(t, "postgres://u:p@10.0.0.5:5432/catalog?sslmode=disable",
		databaseURLWithIPv4("postgres://u:p@10.0.0.5/catalog?sslmode=disable"))
	// Sin IPv4 resoluble se devuelve la URL original.
	assert.Equal(t, "postgres://u:p@[::1]:5433/catalog", databaseURLWithIPv4("postgres://u:p@[::1]:5433/catalog"))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate("crear", nil))
	assert.ErrorIs(t, translate("obtener", pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, translate("crear", &pgconn.PgError{Code: "23505"}), domain.ErrDuplicate)
	assert.ErrorIs(t, translate("crear", &pgconn.PgError{Code: "23503"}), domain.ErrInvalidInput)

	err := translate("borrar", errors.New("conexión cerrada"))
	assert.EqualError(t, err, "borrar: conexión cerrada")
}

func TestQueryTracer_LogsSQLWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	tr := &queryTracer{log: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1 WHERE $1", Args: []any{"secreto"}})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})

	out := buf.String()
	assert.Contains(t, out, `"sql":"SELECT 1 WHERE $1"`)
	assert.Contains(t, out, `"args":1`)
	assert.Contains(t, out, `"rows":1`)
	assert.NotContains(t, out, "secreto")
}
