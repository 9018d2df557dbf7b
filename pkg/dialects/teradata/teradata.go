// Package teradata provides the Teradata dialect.
package teradata

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(Teradata)
}

// Teradata accepts SEL as SELECT and BT/ET transaction markers.
var Teradata = ansi.ANSI.Copy("teradata").
	Describe("Teradata").
	Reserved("ABORTSESSION", "BT", "COLLECT", "ET", "LOCKING", "MULTISET",
		"QUALIFY", "SAMPLE", "SEL", "STATISTICS", "TOP", "VOLATILE").
	Unreserved("STAT", "STATS", "DATABASE").
	Grammar("SelectStatementSegment", g.Sequence(g.OneOf(g.Keyword("SELECT"), g.Keyword("SEL")), ansi.Body)).
	Grammar("CollectStatisticsStatementSegment", g.Sequence(
		g.Keyword("COLLECT"), g.OneOf(g.Keyword("STAT"), g.Keyword("STATS"), g.Keyword("STATISTICS")), ansi.Body,
	)).
	Grammar("BteqTransactionStatementSegment", g.Sequence(g.OneOf(g.Keyword("BT"), g.Keyword("ET")), ansi.Body)).
	Grammar("DatabaseStatementSegment", g.Sequence(g.Keyword("DATABASE"), ansi.Body)).
	Grammar("CreateTableStatementSegment", g.Sequence(
		g.Keyword("CREATE"),
		g.Optional(g.OneOf(g.Keyword("SET"), g.Keyword("MULTISET"))),
		g.Optional(g.OneOf(g.Keyword("VOLATILE"), g.Ref("TemporaryGrammar"), ansi.Keywords("GLOBAL", "TEMPORARY"))),
		g.Keyword("TABLE"), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("CollectStatisticsStatementSegment"),
		g.Ref("BteqTransactionStatementSegment"),
		g.Ref("DatabaseStatementSegment"),
	).
	Build()
