// Package exasol provides the Exasol dialect.
package exasol

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(Exasol)
}

// Exasol adds schema switching, scripts and bulk import/export.
var Exasol = ansi.ANSI.Copy("exasol").
	Describe("Exasol").
	Reserved("CONNECT", "EMITS", "ENFORCE", "IMPORT", "EXPORT", "LOCAL",
		"MINUS", "NVL", "PRIOR", "PROFILE", "SCRIPT", "SUBTYPE").
	Unreserved("OPEN", "CLOSE", "FLUSH", "KILL", "RECOMPRESS", "REORGANIZE").
	Grammar("OpenSchemaStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("OPEN"), g.Keyword("CLOSE")), g.Keyword("SCHEMA"), ansi.Body,
	)).
	Grammar("ExecuteScriptStatementSegment", g.Sequence(ansi.Keywords("EXECUTE", "SCRIPT"), ansi.Body)).
	Grammar("ImportStatementSegment", g.Sequence(g.Keyword("IMPORT"), ansi.Body)).
	Grammar("ExportStatementSegment", g.Sequence(g.Keyword("EXPORT"), ansi.Body)).
	Grammar("FlushStatisticsStatementSegment", g.Sequence(g.Keyword("FLUSH"), ansi.Body)).
	Grammar("KillStatementSegment", g.Sequence(g.Keyword("KILL"), ansi.Body)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("OpenSchemaStatementSegment"),
		g.Ref("ExecuteScriptStatementSegment"),
		g.Ref("ImportStatementSegment"),
		g.Ref("ExportStatementSegment"),
		g.Ref("FlushStatisticsStatementSegment"),
		g.Ref("KillStatementSegment"),
	).
	Build()
