// Package duckdb provides the DuckDB dialect.
package duckdb

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	"github.com/leapstack-labs/gofluff/pkg/dialects/postgres"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB extends PostgreSQL with extension management, PRAGMA and
// ATTACH statements.
var DuckDB = postgres.Postgres.Copy("duckdb").
	Describe("DuckDB").
	Reserved("QUALIFY", "PIVOT", "UNPIVOT").
	Unreserved("ANTI", "ATTACH", "DETACH", "INSTALL", "LOAD", "PRAGMA", "SEMI", "SUMMARIZE").
	Grammar("InstallStatementSegment", g.Sequence(g.OneOf(g.Keyword("INSTALL"), g.Keyword("LOAD")), ansi.Body)).
	Grammar("PragmaStatementSegment", g.Sequence(g.Keyword("PRAGMA"), ansi.Body)).
	Grammar("AttachStatementSegment", g.Sequence(g.OneOf(g.Keyword("ATTACH"), g.Keyword("DETACH")), ansi.Body)).
	Grammar("SummarizeStatementSegment", g.Sequence(g.OneOf(g.Keyword("SUMMARIZE"), g.Keyword("DESCRIBE")), ansi.Body)).
	Grammar("PivotStatementSegment", g.Sequence(g.OneOf(g.Keyword("PIVOT"), g.Keyword("UNPIVOT")), ansi.Body)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("InstallStatementSegment"),
		g.Ref("PragmaStatementSegment"),
		g.Ref("AttachStatementSegment"),
		g.Ref("SummarizeStatementSegment"),
		g.Ref("PivotStatementSegment"),
	).
	Build()
