// Package web holds the built-in host document and the default profile.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte

// ProfileJSON is served at /data/cv.json when no profile document is configured.
//
//go:embed data/cv.json
var ProfileJSON []byte
