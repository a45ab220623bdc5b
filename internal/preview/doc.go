// Package preview implements watch mode: documents and site assets are
// watched, changes are debounced into rebuilds through build.BuildService,
// and the outcome of the last rebuild is served over HTTP.
package preview
