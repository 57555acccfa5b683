// Package generation defines the interface and value types for delegating
// free-text generation to an external LLM service, together with the error
// taxonomy callers use to classify failures. It keeps the application
// agnostic to the upstream provider: services depend on the Generator
// interface and the platform adapter supplies the wire-level implementation.
package generation
