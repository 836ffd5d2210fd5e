package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type queryStartKey struct{}

type queryStart struct {
	sql   string
	nargs int
	at    time.Time
}

// queryTracer implementa pgx.QueryTracer sobre zerolog.
type queryTracer struct {
	log zerolog.Logger
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, nargs: len(data.Args), at: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	ev := t.log.Debug()
	if data.Err != nil {
		ev = t.log.Warn().Err(data.Err)
	}
	// Los argumentos no se registran: pueden traer datos del catálogo.
	ev.Str("sql", start.sql).
		Int("args", start.nargs).
		Int64("rows", data.CommandTag.RowsAffected()).
		Dur("took", time.Since(start.at)).
		Msg("consulta")
}
