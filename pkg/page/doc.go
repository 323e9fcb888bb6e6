// Package page defines the page context handed to the theme by the identity
// backend: the page identifier discriminant, realm flags, the user profile
// attribute descriptors and the per-field message lookup.
package page
