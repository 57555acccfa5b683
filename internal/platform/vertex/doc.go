// Package vertex implements the generation.Generator interface against the
// Vertex AI generateContent REST endpoints. It owns bearer-token acquisition,
// the ordered fallback across candidate models, wire payload construction,
// and response text extraction.
package vertex
