// Package builtin registers every builtin dialect. Import it for its
// side effects.
package builtin

import (
	// Each package registers its dialect in init().
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/bigquery"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/exasol"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/hive"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/redshift"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/snowflake"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/sqlite"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/teradata"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/tsql"
)
