// Package connectors provides the readers docsplice pulls markdown from.
// The filesystem connector reads sources beneath the manifest root and
// expands doublestar patterns.
package connectors
