// Package auth implements the token-to-channel authorization table.
//
// The table is parsed once from a configuration string and is immutable
// afterwards; reloads build a fresh table and swap it through a Store so
// readers never observe a partial update.
//
// Table format: comma-separated entries, each either "token" (authorizes
// the "default" channel) or "token:channel". Whitespace around tokens and
// channels is trimmed, empty entries are skipped, and when a token
// appears more than once the last occurrence wins.
//
// Example:
//
//	table, err := auth.Parse("abc:service1, xyz:service2, legacy")
//	ch, ok := table.Authorize("abc")        // "service1", true
//	ok = table.IsAuthorizedFor("xyz", "service1") // false
package auth
