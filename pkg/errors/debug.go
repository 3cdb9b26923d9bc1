package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the catalog and auth stores can trigger.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// constraintHints names the daypass rule behind each schema constraint.
var constraintHints = map[string]string{
	"idx_products_batch_day_category": "one product per (batch, day, category)",
	"products_batch_id_fkey":          "product references a missing batch",
	"users_email_key":                 "email already registered",
	"batches_name_check":              "batch name must not be blank",
}

// PGDiagnostics is the subset of a Postgres error worth logging.
type PGDiagnostics struct {
	Code       string `json:"pg_code,omitempty"`
	Constraint string `json:"pg_constraint,omitempty"`
	Table      string `json:"pg_table,omitempty"`
	Column     string `json:"pg_column,omitempty"`
	Detail     string `json:"pg_detail,omitempty"`
	Message    string `json:"pg_message,omitempty"`
	Hint       string `json:"pg_hint,omitempty"`
}

// ErrorDump flattens an error for structured logs.
type ErrorDump struct {
	TopMessage string         `json:"top_message"`
	Code       Code           `json:"code,omitempty"`
	Chain      []string       `json:"chain,omitempty"`
	PG         *PGDiagnostics `json:"pg,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.PG = pgDiagnostics(err)
	return d
}

// pgDiagnostics accepts both driver error types: pgx through gorm, lib/pq
// through goose.
func pgDiagnostics(err error) *PGDiagnostics {
	var diag *PGDiagnostics

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		diag = &PGDiagnostics{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	case errors.As(err, &pqErr):
		diag = &PGDiagnostics{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	default:
		return nil
	}

	diag.Hint = hintFor(diag)
	return diag
}

func hintFor(diag *PGDiagnostics) string {
	if hint, ok := constraintHints[diag.Constraint]; ok {
		return hint
	}
	switch diag.Code {
	case pgNumericOutOfRange:
		return "value exceeds the column range (prices numeric(10,2), stock integer)"
	case pgCheckViolation:
		return "row violates a check on " + diag.Table
	case pgForeignKeyViolation:
		return "referenced row does not exist"
	case pgUniqueViolation:
		return "duplicate row in " + diag.Table
	}
	return ""
}
