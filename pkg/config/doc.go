// Package config loads the tool's own settings (not the YAML document being
// rendered).
//
// Sources are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file: --config, or config.toml / config.yaml /
//     config.yml under $XDG_CONFIG_HOME/yaml2config
//  3. YAML2CONFIG_* environment variables, "__" separating nested keys
//     (YAML2CONFIG_SYNC__BRANCH=main sets sync.branch)
//  4. command line flags that were explicitly set
//
// Validate resolves and checks the directories before any rendering starts.
package config
