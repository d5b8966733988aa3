// Package config loads wt2003s settings from a file, WT2003S_* environment
// variables and built-in defaults using viper.
package config
