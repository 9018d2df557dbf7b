// Package ansi provides the base ANSI SQL dialect.
//
// Every other builtin dialect starts as a copy of ANSI and adds or
// overrides keywords and statement grammars.
package ansi

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(ANSI)
}

// Body matches the remainder of a statement, up to the next delimiter.
var Body = g.Ref("StatementBodySegment")

// Statements lists the statement grammars ANSI recognises. Dialects
// extend StatementSegment rather than this slice.
var Statements = []string{
	"SelectStatementSegment",
	"WithCompoundStatementSegment",
	"BracketedSelectSegment",
	"ValuesClauseSegment",
	"InsertStatementSegment",
	"UpdateStatementSegment",
	"DeleteStatementSegment",
	"MergeStatementSegment",
	"TruncateStatementSegment",
	"CreateTableStatementSegment",
	"CreateViewStatementSegment",
	"CreateSchemaStatementSegment",
	"CreateDatabaseStatementSegment",
	"CreateIndexStatementSegment",
	"CreateFunctionStatementSegment",
	"CreateRoleStatementSegment",
	"CreateSequenceStatementSegment",
	"DropStatementSegment",
	"AlterStatementSegment",
	"GrantStatementSegment",
	"RevokeStatementSegment",
	"SetStatementSegment",
	"UseStatementSegment",
	"ExplainStatementSegment",
	"TransactionStatementSegment",
	"CommentStatementSegment",
}

func refs(names []string) []g.Matcher {
	out := make([]g.Matcher, len(names))
	for i, n := range names {
		out[i] = g.Ref(n)
	}
	return out
}

func kw(words ...string) g.Matcher {
	if len(words) == 1 {
		return g.Keyword(words[0])
	}
	seq := make([]g.Matcher, len(words))
	for i, w := range words {
		seq[i] = g.Keyword(w)
	}
	return g.Sequence(seq...)
}

// Keywords returns a grammar matching the words in order.
func Keywords(words ...string) g.Matcher { return kw(words...) }

var orReplace = g.Optional(kw("OR", "REPLACE"))

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.NewDialect("ansi").
	Describe("Standard SQL; the base every other dialect extends").
	Reserved(ReservedKeywords...).
	Unreserved(UnreservedKeywords...).
	// File structure
	Grammar(g.FileGrammar, g.AnyNumberOf(g.Ref(g.StatementGrammar), g.Ref(g.DelimiterGrammar))).
	Grammar(g.DelimiterGrammar, g.Symbol(";")).
	Grammar("StatementBodySegment", g.Anything().Until(g.Ref(g.DelimiterGrammar))).
	Grammar(g.StatementGrammar, g.OneOf(refs(Statements)...)).
	// Shared fragments
	Grammar("TemporaryGrammar", g.OneOf(kw("TEMP"), kw("TEMPORARY"))).
	Grammar("IfExistsGrammar", kw("IF", "EXISTS")).
	Grammar("IfNotExistsGrammar", kw("IF", "NOT", "EXISTS")).
	// Queries
	Grammar("SelectStatementSegment", g.Sequence(kw("SELECT"), Body)).
	Grammar("WithCompoundStatementSegment", g.Sequence(kw("WITH"), g.Optional(kw("RECURSIVE")), Body)).
	Grammar("BracketedSelectSegment", g.Sequence(
		g.Symbol("("),
		g.OneOf(g.Ref("SelectStatementSegment"), g.Ref("WithCompoundStatementSegment")),
	)).
	Grammar("ValuesClauseSegment", g.Sequence(kw("VALUES"), Body)).
	// DML
	Grammar("InsertStatementSegment", g.Sequence(kw("INSERT"), kw("INTO"), Body)).
	Grammar("UpdateStatementSegment", g.Sequence(kw("UPDATE"), Body)).
	Grammar("DeleteStatementSegment", g.Sequence(kw("DELETE"), kw("FROM"), Body)).
	Grammar("MergeStatementSegment", g.Sequence(kw("MERGE"), kw("INTO"), Body)).
	Grammar("TruncateStatementSegment", g.Sequence(kw("TRUNCATE"), g.Optional(kw("TABLE")), Body)).
	// DDL
	Grammar("CreateTableStatementSegment", g.Sequence(
		kw("CREATE"), orReplace, g.Optional(g.Ref("TemporaryGrammar")),
		kw("TABLE"), g.Optional(g.Ref("IfNotExistsGrammar")), Body,
	)).
	Grammar("CreateViewStatementSegment", g.Sequence(
		kw("CREATE"), orReplace, g.Optional(g.Ref("TemporaryGrammar")),
		g.Optional(kw("MATERIALIZED")), kw("VIEW"), g.Optional(g.Ref("IfNotExistsGrammar")), Body,
	)).
	Grammar("CreateSchemaStatementSegment", g.Sequence(kw("CREATE"), kw("SCHEMA"), g.Optional(g.Ref("IfNotExistsGrammar")), Body)).
	Grammar("CreateDatabaseStatementSegment", g.Sequence(kw("CREATE"), kw("DATABASE"), g.Optional(g.Ref("IfNotExistsGrammar")), Body)).
	Grammar("CreateIndexStatementSegment", g.Sequence(kw("CREATE"), g.Optional(kw("UNIQUE")), kw("INDEX"), Body)).
	Grammar("CreateFunctionStatementSegment", g.Sequence(
		kw("CREATE"), orReplace, g.Optional(g.Ref("TemporaryGrammar")), kw("FUNCTION"), Body,
	)).
	Grammar("CreateRoleStatementSegment", g.Sequence(kw("CREATE"), g.OneOf(kw("ROLE"), kw("USER")), Body)).
	Grammar("CreateSequenceStatementSegment", g.Sequence(kw("CREATE"), kw("SEQUENCE"), Body)).
	Grammar("DropStatementSegment", g.Sequence(
		kw("DROP"),
		g.OneOf(
			kw("TABLE"), kw("VIEW"), kw("SCHEMA"), kw("DATABASE"), kw("INDEX"),
			kw("FUNCTION"), kw("SEQUENCE"), kw("ROLE"), kw("USER"), kw("TYPE"),
			kw("MATERIALIZED", "VIEW"),
		),
		g.Optional(g.Ref("IfExistsGrammar")),
		Body,
	)).
	Grammar("AlterStatementSegment", g.Sequence(kw("ALTER"), g.Code(), Body)).
	// Access control and session
	Grammar("GrantStatementSegment", g.Sequence(kw("GRANT"), Body)).
	Grammar("RevokeStatementSegment", g.Sequence(kw("REVOKE"), Body)).
	Grammar("SetStatementSegment", g.Sequence(kw("SET"), Body)).
	Grammar("UseStatementSegment", g.Sequence(kw("USE"), Body)).
	Grammar("ExplainStatementSegment", g.Sequence(kw("EXPLAIN"), Body)).
	Grammar("TransactionStatementSegment", g.Sequence(
		g.OneOf(kw("START"), kw("BEGIN"), kw("COMMIT"), kw("ROLLBACK"), kw("END")),
		Body,
	)).
	Grammar("CommentStatementSegment", g.Sequence(kw("COMMENT"), kw("ON"), Body)).
	Build()
