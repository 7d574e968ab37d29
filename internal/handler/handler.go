// Package handler is the HTTP layer between the router and the services.
//
// Every endpoint goes through Handle: the request is bound into a fresh
// payload, validated, passed to a typed function and the returned value is
// written inside a success envelope. Errors are left to the global error
// handler.
package handler
