// Package errs defines the error shapes the HTTP layer sends to clients.
//
// Handlers and services return these so the global error handler can write a
// consistent JSON body: a machine code, a human message, an HTTP status and,
// for form submissions, one entry per offending field.
package errs
