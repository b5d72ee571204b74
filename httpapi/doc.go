// Package httpapi exposes the video store over HTTP with echo.
//
// Handlers decode and validate the request, call the store for plain CRUD or the lifecycle
// manager for checkout, checkin and availability, and return errors unchanged. One central
// error handler turns errors into status codes and {"message", "kind"} bodies.
package httpapi
