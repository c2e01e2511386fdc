// Package file provides the default driven.IndexStore, persisting the index
// as three artifacts in one directory:
//
//   - model.json: format version, build id, creation time, terms and IDF weights
//   - matrix.bin: the document vectors as little-endian binary CSR
//   - metadata.json: path and content per row, indented
//
// Each artifact is written atomically (temp file and rename). Writers take an
// exclusive advisory lock on the directory's .lock file; readers take a
// shared one, so a reader never mixes artifacts from two builds.
package file
