// Package keyrule provides:
//
// - A keyword-driven validation engine for JSON-like data (schema syntax
//   checking, per-kind validator dispatch, instance validation)
// - A stable diagnostic model via Issues (keyword, code, schema pointer,
//   instance pointer)
// - Memoization of compiled validators keyed by (value kind, schema fragment)
//   with precise per-kind invalidation on keyword registration changes
// - Runtime extension and retraction of keyword, syntax, and format checkers
//
// Design policy:
// - Keep only public APIs in the root package; concrete keyword and format
//   checkers live under keywords/ and formats/, the CLI under cmd/keyrule.
// - Checkers signal validation failure through Reports, never through panics
//   or errors; errors are reserved for misconfiguration (duplicate
//   registration, undecodable input).
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	e := keywords.NewEngine()
//	schema, _ := keyrule.DecodeJSON(schemaBytes)
//	doc, _ := keyrule.DecodeJSON(docBytes)
//	err := e.Validate(ctx, schema, doc)
package keyrule
