// Package databricks provides the Databricks SQL dialect.
package databricks

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	"github.com/leapstack-labs/gofluff/pkg/dialects/hive"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(Databricks)
}

// Databricks extends Hive with Delta Lake maintenance statements.
var Databricks = hive.Hive.Copy("databricks").
	Describe("Databricks SQL (Spark with Delta Lake)").
	Reserved("QUALIFY").
	Unreserved("OPTIMIZE", "ZORDER", "VACUUM", "RESTORE", "CACHE", "UNCACHE", "REFRESH").
	Grammar("OptimizeStatementSegment", g.Sequence(g.Keyword("OPTIMIZE"), ansi.Body)).
	Grammar("VacuumStatementSegment", g.Sequence(g.Keyword("VACUUM"), ansi.Body)).
	Grammar("RestoreStatementSegment", g.Sequence(g.Keyword("RESTORE"), ansi.Body)).
	Grammar("CacheStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("CACHE"), g.Keyword("UNCACHE"), g.Keyword("REFRESH")), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("OptimizeStatementSegment"),
		g.Ref("VacuumStatementSegment"),
		g.Ref("RestoreStatementSegment"),
		g.Ref("CacheStatementSegment"),
	).
	Build()
