// Package config assembles the settings of a matchsend run.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. built-in defaults, which reproduce the historical single-shot tool
//  2. a JSON file named by --config (or MATCHSEND_CONFIG)
//  3. MATCHSEND_* environment variables
//  4. command-line flags
//
// Every source is reduced to key/value pairs keyed by the names in [Keys]
// and converted with the same rules, so "port" may be given as 34254 in
// JSON, "34254" in the environment and --port=34254 on the command line.
package config
