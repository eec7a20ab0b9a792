package main

import "embed"

// configFS holds the bundled physics and stage files
//
//go:embed configs
var configFS embed.FS
