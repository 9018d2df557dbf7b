// Package tsql provides the Microsoft T-SQL dialect.
package tsql

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(TSQL)
}

// TSQL treats GO as a batch separator alongside ";".
var TSQL = ansi.ANSI.Copy("tsql").
	Describe("Microsoft SQL Server T-SQL").
	Reserved("BACKUP", "BREAK", "BROWSE", "BULK", "CLUSTERED", "CONTINUE",
		"DBCC", "DENY", "EXEC", "EXECUTE", "FILLFACTOR", "GOTO", "HOLDLOCK",
		"IDENTITY", "IDENTITY_INSERT", "NOCHECK", "NONCLUSTERED", "OPENQUERY",
		"PIVOT", "PRINT", "PROC", "PROCEDURE", "RAISERROR", "RETURN", "TOP",
		"TRAN", "TRY_CONVERT", "UNPIVOT", "WAITFOR", "WHILE").
	Unreserved("GO", "DECLARE", "NOLOCK").
	Grammar(g.DelimiterGrammar, g.OneOf(g.Symbol(";"), g.Keyword("GO"))).
	Grammar("DeclareStatementSegment", g.Sequence(g.Keyword("DECLARE"), ansi.Body)).
	Grammar("ExecuteStatementSegment", g.Sequence(g.OneOf(g.Keyword("EXEC"), g.Keyword("EXECUTE")), ansi.Body)).
	Grammar("PrintStatementSegment", g.Sequence(g.Keyword("PRINT"), ansi.Body)).
	Grammar("CreateProcedureStatementSegment", g.Sequence(
		g.Keyword("CREATE"), g.Optional(ansi.Keywords("OR", "ALTER")),
		g.OneOf(g.Keyword("PROC"), g.Keyword("PROCEDURE")), ansi.Body,
	)).
	Grammar("TransactionStatementSegment", g.Sequence(
		g.OneOf(g.Keyword("BEGIN"), g.Keyword("COMMIT"), g.Keyword("ROLLBACK"), g.Keyword("SAVE")),
		g.Optional(g.OneOf(g.Keyword("TRAN"), g.Keyword("TRANSACTION"))),
		ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("DeclareStatementSegment"),
		g.Ref("ExecuteStatementSegment"),
		g.Ref("PrintStatementSegment"),
		g.Ref("CreateProcedureStatementSegment"),
	).
	Build()
