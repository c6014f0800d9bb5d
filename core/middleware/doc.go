// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: assigns a unique Request ID (RayID) to every incoming request and
//     stores it in the request locals for log correlation.
//   - Headers: applies the operator-configured static headers to every
//     response, including 404 and 500 responses.
//
// Both are registered globally ahead of the content handler.
package middleware
