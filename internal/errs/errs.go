// Package errs defines the errors the API returns to clients.
//
// HTTPError carries a code, a message and the HTTP status. Domain errors
// from package result are translated by FromResult; everything else is
// translated by the global error handler.
package errs
