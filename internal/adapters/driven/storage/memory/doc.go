// Package memory provides in-process implementations of the driven ports.
// They hold state in maps guarded by mutexes and are used by tests and by
// callers that embed docask without touching the filesystem.
package memory
