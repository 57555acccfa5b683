// Package api contains the HTTP layer: handlers, request/response DTOs,
// validation, and the mapping from service errors to status codes. Handlers
// translate between the JSON surface clients see and the service-layer
// operations; no business rules live here.
package api
