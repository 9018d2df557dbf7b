// Package redshift provides the Amazon Redshift dialect.
package redshift

import (
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	"github.com/leapstack-labs/gofluff/pkg/dialects/postgres"
	g "github.com/leapstack-labs/gofluff/pkg/grammar"
)

func init() {
	dialect.Register(Redshift)
}

// Redshift extends PostgreSQL.
var Redshift = postgres.Postgres.Copy("redshift").
	Describe("Amazon Redshift").
	Reserved("AZ64", "BZIP2", "DELTA", "DELTA32K", "GZIP", "LZO", "MOSTLY8",
		"MOSTLY16", "MOSTLY32", "RAW", "TOP", "ZSTD").
	Unreserved("UNLOAD", "DISTKEY", "DISTSTYLE", "SORTKEY", "ENCODE", "EXTERNAL", "LIBRARY").
	Grammar("UnloadStatementSegment", g.Sequence(g.Keyword("UNLOAD"), ansi.Body)).
	Grammar("CreateExternalSchemaStatementSegment", g.Sequence(
		ansi.Keywords("CREATE", "EXTERNAL"), g.OneOf(g.Keyword("SCHEMA"), g.Keyword("TABLE")), ansi.Body,
	)).
	Grammar("CreateLibraryStatementSegment", g.Sequence(
		g.Keyword("CREATE"), g.Optional(ansi.Keywords("OR", "REPLACE")), g.Keyword("LIBRARY"), ansi.Body,
	)).
	ExtendGrammar(g.StatementGrammar,
		g.Ref("UnloadStatementSegment"),
		g.Ref("CreateExternalSchemaStatementSegment"),
		g.Ref("CreateLibraryStatementSegment"),
	).
	Build()
