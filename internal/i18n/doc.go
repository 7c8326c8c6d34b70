// Package i18n resolves alert labels and explanation templates.
//
// A Catalog maps translation keys to templates with positional arguments
// written as {0}, {1}, ... The built-in English catalog is embedded; a YAML
// file with the same shape can override any subset of it.
package i18n
