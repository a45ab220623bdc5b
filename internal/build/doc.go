// Package build provides the canonical execution pipeline for notesite.
//
// A build loads the site and sidebar declarations (or their file overrides),
// discovers the document corpus, checks everything the static-site generator
// would reject, and writes the generator inputs. All execution paths (CLI,
// preview, tests) route through BuildService.
package build
