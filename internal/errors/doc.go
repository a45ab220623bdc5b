// Package errors provides the classified error type used across notesite.
//
// Every error that crosses a package boundary carries a category (what kind of
// failure), a severity (does the run stop) and structured context (which file,
// which config key). The CLI adapter turns the category into an exit code and
// a one-line diagnostic naming the offending key.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryDocs, "document not found").
//		WithContext("doc_id", id).
//		Build()
package errors
