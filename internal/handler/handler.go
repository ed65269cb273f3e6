// Package handler is the HTTP layer between the router and the services.
//
// It binds and validates requests through the validation package, calls the
// service layer, and turns the results into responses.
package handler
