// Package template defines the renderer-agnostic template contract used by the
// page renderers and the form-fields sub-renderer.
package template
