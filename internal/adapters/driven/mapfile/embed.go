package mapfile

import _ "embed"

// builtinName is the file name reported for the embedded map.
const builtinName = "campus.toml"

//go:embed campus.toml
var builtinMap []byte
