// Package files holds the small file system helpers shared by the exporters
// and the run preflight.
//
// Manager writes artifacts atomically: data goes to a temporary file next to
// the target and is renamed into place, so a failed render never leaves a
// truncated PNG or PDF behind.
//
// Discovery lists CSV files in a directory, newest first. The preflight uses
// it to suggest candidates when the requested input file does not exist.
package files
