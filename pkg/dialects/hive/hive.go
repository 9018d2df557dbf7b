// Package hive provides the Apache Hive dialect.
package hive

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(Hive)
}

// Hive adds INSERT OVERWRITE, partition repair and data loading.
var Hive = ansi.ANSI.Copy("hive").
	Describe("Apache Hive").
	Reserved("CLUSTER", "DISTRIBUTE", "EXCHANGE", "MACRO", "MORE",
		"PERCENT", "REDUCE", "SORT", "TABLESAMPLE", "TRANSFORM").
	Unreserved("LOAD", "MSCK", "REPAIR", "SHOW", "INPATH", "OVERWRITE", "SERDE", "STORED", "LOCATION").
	Grammar("InsertStatementSegment", g.Sequence(
		g.Keyword("INSERT"), g.OneOf(g.Keyword("INTO"), g.Keyword("OVERWRITE")), ansi.Body,
	)).
	Grammar("LoadDataStatementSegment", g.Sequence(ansi.Keywords("LOAD", "DATA"), ansi.Body)).
	Grammar("MsckRepairStatementSegment", g.Sequence(ansi.Keywords("MSCK", "REPAIR", "TABLE"), ansi.Body)).
	Grammar("ShowStatementSegment", g.Sequence(g.Keyword("SHOW"), ansi.Body)).
	Grammar("DescribeStatementSegment", g.Sequence(g.OneOf(g.Keyword("DESCRIBE"), g.Keyword("DESC")), ansi.Body)).
	Grammar("CreateTableStatementSegment", g.Sequence(
		g.Keyword("CREATE"), g.Optional(g.Ref("TemporaryGrammar")), g.Optional(g.Keyword("EXTERNAL")),
		g.Keyword("TABLE"), g.Optional(g.Ref("IfNotExistsGrammar")), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("LoadDataStatementSegment"),
		g.Ref("MsckRepairStatementSegment"),
		g.Ref("ShowStatementSegment"),
		g.Ref("DescribeStatementSegment"),
	).
	Build()
