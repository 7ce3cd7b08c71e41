// Package tasks builds completion analytics over tracked days with progress reporting.
//
// # Core Operations
//
//  1. [BuildReport] : pure reduction of daily records into per-day completion and the
//     rounded average across the window
//  2. [HistoryEngine.Report] : loads the last n days through a [DaySource], attaches calm
//     session totals from a [SessionSource] and builds the report
//  3. [HistoryEngine.Export] : writes a report to disk as JSON, CSV, Markdown or text
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate]. Updates use select with default
// so a slow or absent reader never blocks the operation.
package tasks
