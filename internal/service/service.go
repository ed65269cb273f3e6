// Package service holds the invoicing business rules: the invoice form
// actions, sign-in, and account seeding.
//
// Services take their stores and collaborators as small interfaces so tests
// can hand in fakes; NewService wires the real ones from the repositories.
package service
