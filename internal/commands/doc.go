// Package commands provides the command-line interface for the gosym tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key generation
//   - GF(2^8) queries
//
// Flags, GOSYM_* environment variables and an optional JSONC profile are merged through viper,
// in that order of precedence, and validated before a command runs.
package commands
