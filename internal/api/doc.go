// Package api contains the HTTP handlers and request/response models. This
// layer is thin plumbing: it parses requests into plain values, calls exactly
// one service operation per request, and maps the returned domain error to a
// transport status code.
package api
