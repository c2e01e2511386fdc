// Package file stores docask settings in a TOML file, by default
// ~/.docask/config.toml. Keys use dot notation and map to nested tables.
package file
