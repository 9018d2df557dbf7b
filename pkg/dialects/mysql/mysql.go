// Package mysql provides the MySQL dialect.
package mysql

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(MySQL)
}

// MySQL supports "#" comments and administrative statements.
var MySQL = ansi.ANSI.Copy("mysql").
	Describe("MySQL and MariaDB").
	WithHashComments().
	Reserved("ACCESSIBLE", "DATABASES", "DELAYED", "DIV", "DUAL",
		"HIGH_PRIORITY", "IGNORE", "KEYS", "LOW_PRIORITY", "MOD", "REGEXP",
		"RLIKE", "SCHEMAS", "SEPARATOR", "SHOW", "SQL_CALC_FOUND_ROWS",
		"STRAIGHT_JOIN", "XOR", "ZEROFILL").
	Unreserved("LOCK", "TABLES", "UNLOCK", "DELIMITER").
	Grammar("ShowStatementSegment", g.Sequence(g.Keyword("SHOW"), ansi.Body)).
	Grammar("DescribeStatementSegment", g.Sequence(g.OneOf(g.Keyword("DESCRIBE"), g.Keyword("DESC")), ansi.Body)).
	Grammar("ReplaceStatementSegment", g.Sequence(g.Keyword("REPLACE"), g.Optional(g.Keyword("INTO")), ansi.Body)).
	Grammar("LockTablesStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("LOCK"), g.Keyword("UNLOCK")), g.Keyword("TABLES"), ansi.Body,
	)).
	// MySQL allows INSERT without INTO.
	Grammar("InsertStatementSegment", g.Sequence(
		g.Keyword("INSERT"), g.Optional(g.OneOf(g.Keyword("LOW_PRIORITY"), g.Keyword("DELAYED"), g.Keyword("HIGH_PRIORITY"))),
		g.Optional(g.Keyword("IGNORE")), g.Optional(g.Keyword("INTO")), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("ShowStatementSegment"),
		g.Ref("DescribeStatementSegment"),
		g.Ref("ReplaceStatementSegment"),
		g.Ref("LockTablesStatementSegment"),
	).
	Build()
