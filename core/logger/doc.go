// Package logger is a structured event log for shell sessions. Events are
// written as newline delimited JSON and can be summarized with Report.
package logger
