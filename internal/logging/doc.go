// Package logging configures the process-wide slog logger.
//
// Records always go to a text handler on stderr. When a Seq URL is
// configured they are also shipped to Seq through slog-seq, and every record
// carries the run_id of the invocation.
package logging
