// Package psqlbuilder exposes squirrel builders preconfigured for
// PostgreSQL dollar placeholders, so repositories never repeat the
// PlaceholderFormat call.
package psqlbuilder

import "github.com/Masterminds/squirrel"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT with dollar placeholders.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}
