// Package export renders flow graphs into a directory of Markdown files.
//
// An export run creates one Writer bound to an output directory:
//
//	w, err := export.CreateOutput("./docs", false)
//	file, err := w.WriteFlow(f)                        // flow-<id>.md
//	err = w.WriteBucket(bucket, []export.FlowFile{*file}) // appended to buckets.md
//	err = w.WriteErrors("Flow", id, fieldErrors)        // appended to errors.md
//
// CreateOutput refuses a non-empty directory unless overwrite is set, and
// (re)creates the two aggregate files, buckets.md and errors.md, each with a
// single top-level header. Every later write to an aggregate file is an
// independent open-append-close unit; no file handle outlives a call.
//
// # File Naming
//
// Flows are written to flow-<id>.md. A flow without an id gets a random
// UUID, so flows lacking ids never collide within a run. The FlowFile
// returned by WriteFlow is the only way bucket sections refer to a flow.
//
// # Missing Data
//
// Absent flow fields render as "(unknown)"; an error set without an id
// renders as "unknown". Neither is an error.
//
// A Writer does no locking; calls must be sequenced by the caller.
package export
