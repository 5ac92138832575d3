// Package config handles configuration loading and merging for tally.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--tag-scope, --on-error, --skipped-fails, --format, etc.)
//  2. Environment variables (TALLY_TAG_SCOPE, TALLY_FORMAT, NO_COLOR, ...)
//  3. YAML config file (.tally.yaml in the working directory or ~/.config/tally/.tally.yaml)
//  4. Hardcoded defaults
//
// # Build Policy
//
// skipped_fails and undefined_fails decide whether skipped and undefined
// steps count as failures. Both default to false.
//
// # Tag Scope
//
// tag_scope is "global" (one tag index across all result files, the default)
// or "project" (one index per result file).
//
// # Environment Variables
//
//   - TALLY_TAG_SCOPE, TALLY_ON_SOURCE_ERROR, TALLY_FORMAT, TALLY_THEME,
//     TALLY_OUTPUT_DIR, TALLY_WORKERS, TALLY_LOG_LEVEL
//   - TALLY_SKIPPED_FAILS, TALLY_UNDEFINED_FAILS: "true" or "1"
//   - TALLY_NO_COLOR or NO_COLOR: disable colors
package config
