package ansi

// ReservedKeywords are the ANSI reserved words. They cannot be used as
// unquoted identifiers.
var ReservedKeywords = []string{
	"ALL", "ALTER", "AND", "ANY", "AS", "ASC", "BETWEEN", "BOTH", "BY",
	"CASE", "CAST", "CHECK", "COLLATE", "COLUMN", "CONSTRAINT", "CREATE",
	"CROSS", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"CURRENT_USER", "DEFAULT", "DELETE", "DESC", "DISTINCT", "DROP", "ELSE",
	"END", "EXCEPT", "EXISTS", "FALSE", "FETCH", "FOR", "FOREIGN", "FROM",
	"FULL", "GRANT", "GROUP", "HAVING", "IN", "INNER", "INSERT", "INTERSECT",
	"INTO", "IS", "JOIN", "LATERAL", "LEADING", "LEFT", "LIKE", "LIMIT",
	"NATURAL", "NOT", "NULL", "OFFSET", "ON", "OR", "ORDER", "OUTER",
	"OVER", "PARTITION", "PRIMARY", "REFERENCES", "RIGHT", "ROWS", "SELECT",
	"SET", "SOME", "TABLE", "THEN", "TO", "TRAILING", "TRUE", "UNION",
	"UNIQUE", "UPDATE", "USING", "VALUES", "WHEN", "WHERE", "WINDOW", "WITH",
}

// UnreservedKeywords are ANSI keywords that may still be used as
// identifiers.
var UnreservedKeywords = []string{
	"ABORT", "ABSOLUTE", "ACTION", "ADD", "ADMIN", "AFTER", "ANALYZE",
	"AUTHORIZATION", "BEFORE", "BEGIN", "CASCADE", "CHAIN", "COMMENT",
	"COMMIT", "COMMITTED", "DATA", "DATABASE", "DAY", "DEFERRED",
	"DESCRIBE", "DOMAIN", "EACH", "ESCAPE", "EXCLUDE", "EXECUTE", "EXPLAIN",
	"EXTENSION", "FIRST", "FOLLOWING", "FUNCTION", "HOUR", "IF", "IGNORE",
	"IMMEDIATE", "INDEX", "ISOLATION", "KEY", "LANGUAGE", "LAST", "LEVEL",
	"LOCAL", "MATERIALIZED", "MERGE", "MINUTE", "MONTH", "NO", "NULLS",
	"OF", "ONLY", "OPTION", "OVERWRITE", "PRECEDING", "PRIVILEGES",
	"RANGE", "READ", "RECURSIVE", "RELEASE", "RENAME", "REPLACE",
	"RESPECT", "RESTRICT", "RETURNS", "REVOKE", "ROLE", "ROLLBACK",
	"SAVEPOINT", "SCHEMA", "SECOND", "SEQUENCE", "SESSION", "START",
	"TEMP", "TEMPORARY", "TIES", "TRANSACTION", "TRUNCATE", "TYPE",
	"UNBOUNDED", "USE", "USER", "VIEW", "WORK", "WRITE", "YEAR", "ZONE",
}
