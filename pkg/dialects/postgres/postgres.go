// Package postgres provides the PostgreSQL dialect.
package postgres

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(Postgres)
}

// reservedWords are reserved in PostgreSQL on top of ANSI.
var reservedWords = []string{
	"ANALYSE", "ANALYZE", "ARRAY", "ASYMMETRIC", "CURRENT_CATALOG",
	"CURRENT_ROLE", "CURRENT_SCHEMA", "DEFERRABLE", "DO", "ILIKE",
	"INITIALLY", "ISNULL", "LOCALTIME", "LOCALTIMESTAMP", "NOTNULL",
	"PLACING", "RETURNING", "SESSION_USER", "SIMILAR", "SYMMETRIC",
	"VARIADIC", "VERBOSE",
}

var unreservedWords = []string{
	"CONCURRENTLY", "COPY", "EXTENSION", "LISTEN", "NOTIFY", "REFRESH",
	"REINDEX", "VACUUM",
}

// Postgres is the PostgreSQL dialect.
var Postgres = ansi.ANSI.Copy("postgres").
	Describe("PostgreSQL").
	Reserved(reservedWords...).
	Unreserved(unreservedWords...).
	Grammar("CopyStatementSegment", g.Sequence(g.Keyword("COPY"), ansi.Body)).
	Grammar("VacuumStatementSegment", g.Sequence(g.Keyword("VACUUM"), ansi.Body)).
	Grammar("AnalyzeStatementSegment", g.Sequence(g.OneOf(g.Keyword("ANALYZE"), g.Keyword("ANALYSE")), ansi.Body)).
	Grammar("DoStatementSegment", g.Sequence(g.Keyword("DO"), ansi.Body)).
	Grammar("CreateExtensionStatementSegment", g.Sequence(
		g.Keyword("CREATE"), g.Keyword("EXTENSION"), g.Optional(g.Ref("IfNotExistsGrammar")), ansi.Body,
	)).
	Grammar("RefreshMaterializedViewStatementSegment", g.Sequence(
		ansi.Keywords("REFRESH", "MATERIALIZED", "VIEW"), ansi.Body,
	)).
	Grammar("ListenNotifyStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("LISTEN"), g.Keyword("NOTIFY"), g.Keyword("UNLISTEN")), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("CopyStatementSegment"),
		g.Ref("VacuumStatementSegment"),
		g.Ref("AnalyzeStatementSegment"),
		g.Ref("DoStatementSegment"),
		g.Ref("CreateExtensionStatementSegment"),
		g.Ref("RefreshMaterializedViewStatementSegment"),
		g.Ref("ListenNotifyStatementSegment"),
	).
	Build()
