// Package config manages user-level settings stored at ~/.skillforge/config.yaml.
// Values may also come from SKILLFORGE_* environment variables, optionally
// seeded from ~/.skillforge/.env. Keys cover the global materials directory
// override, the default clone depth and the HTTP probe timeout.
package config
