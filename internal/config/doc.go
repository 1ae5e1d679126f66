// Package config resolves process startup configuration from a layered set of
// named external inputs (CLI flag overrides > environment variables > YAML
// config file). Each setting is resolved independently: absent inputs fall
// back to a documented default or a computed fallback, present inputs must
// parse under the target type's grammar or startup aborts. The resolved
// snapshot is immutable and exposes strongly typed settings to the rest of
// the application.
package config
