// Package assets holds the data files compiled into the binary: the default
// word list, the curated board library and the SQLite migrations.
package assets

import "embed"

// WordList is the default dictionary, one word per line.
//
//go:embed words.txt
var WordList string

// Layouts is the curated board library in YAML.
//
//go:embed layouts.yaml
var Layouts []byte

// Migrations holds sql/*.sql, applied in lexical order.
//
//go:embed sql/*.sql
var Migrations embed.FS
