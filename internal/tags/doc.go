// Package tags wraps audio metadata extraction behind a small Reader contract
// so scanning code never depends on the tag library directly and tests can
// substitute fakes.
package tags
