// Package sqlite provides the SQLite dialect.
package sqlite

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(SQLite)
}

// SQLite adds PRAGMA, VACUUM and database attachment.
var SQLite = ansi.ANSI.Copy("sqlite").
	Describe("SQLite").
	Reserved("AUTOINCREMENT", "GLOB", "INDEXED", "ISNULL", "NOTNULL", "REGEXP").
	Unreserved("ATTACH", "DETACH", "PRAGMA", "REINDEX", "VACUUM", "CONFLICT", "ROWID").
	Grammar("PragmaStatementSegment", g.Sequence(g.Keyword("PRAGMA"), ansi.Body)).
	Grammar("VacuumStatementSegment", g.Sequence(g.Keyword("VACUUM"), ansi.Body)).
	Grammar("AttachStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("ATTACH"), g.Keyword("DETACH")), g.Optional(g.Keyword("DATABASE")), ansi.Body,
	)).
	Grammar("ReindexStatementSegment", g.Sequence(g.Keyword("REINDEX"), ansi.Body)).
	// INSERT OR REPLACE / OR IGNORE ...
	Grammar("InsertStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("INSERT"), g.Keyword("REPLACE")),
		g.Optional(g.Sequence(g.Keyword("OR"), g.Code())),
		g.Keyword("INTO"), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("PragmaStatementSegment"),
		g.Ref("VacuumStatementSegment"),
		g.Ref("AttachStatementSegment"),
		g.Ref("ReindexStatementSegment"),
	).
	Build()
