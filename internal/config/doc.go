// Package config provides configuration loading, merging, and validation
// facilities for the finance tracker server and its sync agent.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetServerConfig] for the HTTP server and
// [GetClientConfig] for the sync agent.
package config
