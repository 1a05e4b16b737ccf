// Package core provides the business logic for the lawyer directory.
//
// The package holds the record model and the import pipeline, independent of
// any transport layer. Web handlers, the server entry point, and tests drive it
// through [Service].
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Schema: [FieldSpecs] lists every importable column, its type, and whether
//     the single-shot path requires it.
//   - Pipeline: parse ([ParseFile]), validate ([Validate]), transform
//     ([Transform]), then dedupe ([ClassifyBatch] or [FindDuplicates]).
//   - Repository: the in-memory collection, implemented in internal/store.
//   - Syncer: an optional remote document store, implemented in internal/remote.
//
// # Import Paths
//
// Two ingestion paths share the parser and transformer:
//
//  1. Single-shot ([Service.ImportFile]): every row is validated against the
//     full rule set and checked for duplicate emails. Any error blocks the
//     whole file and nothing is committed.
//  2. Batch ([Service.ImportBatch]): rows only need a name, email, and practice
//     area. Failed and duplicate rows are skipped individually and the rest
//     are committed.
//
// Both paths have a dry-run variant ([Service.ValidateFile] and
// [Service.PreviewBatch]). Classification and commit run under the
// repository's write lock, so concurrent imports cannot race on email
// uniqueness.
//
// # Encoding
//
// CSV input is wrapped with [WrapForCSV], which skips a UTF-8 byte order mark
// and replaces invalid byte sequences. XLSX input is read from the first
// worksheet only.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError].
// Each category has a code for support reference:
//
//   - FILE001-FILE005: File errors (size, format, unreadable, missing, empty)
//   - VAL001-VAL004: Validation errors (rows, fields, duplicates, bad body)
//   - IMP001-IMP003: Import errors (busy, cancelled, timeout)
//   - REC001: Record not found
//   - SYNC001-SYNC002: Remote sync errors
package core
