// Package bigquery provides the Google BigQuery dialect.
package bigquery

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(BigQuery)
}

// BigQuery supports "#" comments and scripting statements.
var BigQuery = ansi.ANSI.Copy("bigquery").
	Describe("Google BigQuery standard SQL").
	WithHashComments().
	Reserved("ASSERT_ROWS_MODIFIED", "CONTAINS", "CUBE", "DEFINE", "ENUM",
		"GROUPING", "GROUPS", "HASH", "IGNORE", "LOOKUP", "NEW", "PROTO",
		"QUALIFY", "RESPECT", "ROLLUP", "STRUCT", "TABLESAMPLE", "TREAT",
		"UNNEST", "WITHIN").
	Unreserved("ASSERT", "DECLARE", "EXPORT", "OPTIONS", "SAFE", "SYSTEM_TIME").
	Grammar("DeclareStatementSegment", g.Sequence(g.Keyword("DECLARE"), ansi.Body)).
	Grammar("AssertStatementSegment", g.Sequence(g.Keyword("ASSERT"), ansi.Body)).
	Grammar("ExportStatementSegment", g.Sequence(ansi.Keywords("EXPORT", "DATA"), ansi.Body)).
	Grammar("CreateModelStatementSegment", g.Sequence(
		g.Keyword("CREATE"), g.Optional(ansi.Keywords("OR", "REPLACE")), g.Keyword("MODEL"), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("DeclareStatementSegment"),
		g.Ref("AssertStatementSegment"),
		g.Ref("ExportStatementSegment"),
		g.Ref("CreateModelStatementSegment"),
	).
	Build()
