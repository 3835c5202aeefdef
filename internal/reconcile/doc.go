// Package reconcile compares two catalogue scans and reports the files
// present in one but absent from the other.
//
// Matching is a left anti-join on a derived identity key (title-or-filename
// plus album), a deliberately fuzzy heuristic carried over unchanged from the
// catalog's original matching rules. An origin record matching any number of
// destination records counts as matched and is excluded from the diff.
package reconcile
