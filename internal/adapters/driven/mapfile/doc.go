// Package mapfile loads campus map definitions from TOML, YAML or HCL files,
// and provides the built-in A Block map.
//
// The format is chosen by file extension:
//
//	.toml         TOML (pelletier/go-toml/v2)
//	.yaml, .yml   YAML (gopkg.in/yaml.v3)
//	.hcl          HCL (hashicorp/hcl/v2)
//
// Unknown fields are rejected. Schema constraints are checked by the
// validation package before the definition is returned.
package mapfile
