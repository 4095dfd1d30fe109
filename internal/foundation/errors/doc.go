// Package errors provides the classified error primitives used across docsite.
//
// Every failure that reaches the CLI carries a category (parse, transform, config,
// filesystem, ...) and a severity. Page-level failures attach the offending page path
// as context so the build can report where it stopped.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryTransform, "transform failed").
//		Fatal().
//		WithContext("path", "dist/index.html").
//		WithContext("transform", "anchors").
//		Build()
package errors
