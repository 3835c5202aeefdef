// Package scanner records the contents of a file tree into the catalog.
//
// A scan walks every file under a root, applies exclusion rules, hashes and
// tags what remains, and writes one durable record per file plus one session
// row per run. Every file is processed in isolation: a failure is counted and
// logged, and traversal continues. Scan names are write-once; starting a scan
// under an existing name aborts before any traversal or write.
package scanner
