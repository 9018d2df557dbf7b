// Package snowflake provides the Snowflake dialect.
package snowflake

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(Snowflake)
}

// Snowflake adds stages, bulk loading and account object statements.
var Snowflake = ansi.ANSI.Copy("snowflake").
	Describe("Snowflake").
	Reserved("ILIKE", "INCREMENT", "MINUS", "QUALIFY", "REGEXP", "RLIKE",
		"SAMPLE", "TABLESAMPLE", "TRY_CAST").
	Unreserved("FLATTEN", "GET", "LIST", "PUT", "REMOVE", "SHOW", "STAGE",
		"UNDROP", "WAREHOUSE").
	Grammar("CreateStageStatementSegment", g.Sequence(
		g.Keyword("CREATE"), g.Optional(ansi.Keywords("OR", "REPLACE")),
		g.Optional(g.Ref("TemporaryGrammar")), g.Keyword("STAGE"), ansi.Body,
	)).
	Grammar("CopyIntoStatementSegment", g.Sequence(ansi.Keywords("COPY", "INTO"), ansi.Body)).
	Grammar("StageFileStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("PUT"), g.Keyword("GET"), g.Keyword("LIST"), g.Keyword("REMOVE")), ansi.Body,
	)).
	Grammar("ShowStatementSegment", g.Sequence(g.Keyword("SHOW"), ansi.Body)).
	Grammar("DescribeStatementSegment", g.Sequence(g.OneOf(g.Keyword("DESCRIBE"), g.Keyword("DESC")), ansi.Body)).
	Grammar("UndropStatementSegment", g.Sequence(g.Keyword("UNDROP"), ansi.Body)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("CreateStageStatementSegment"),
		g.Ref("CopyIntoStatementSegment"),
		g.Ref("StageFileStatementSegment"),
		g.Ref("ShowStatementSegment"),
		g.Ref("DescribeStatementSegment"),
		g.Ref("UndropStatementSegment"),
	).
	Build()
