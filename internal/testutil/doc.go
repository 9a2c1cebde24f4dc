// Package testutil contains helper builders and canned fixtures used across
// tests to reduce boilerplate when constructing vendor configurations and
// join properties. These helpers are intentionally minimal. They are not
// intended for production usage.
package testutil
