// Package hcl provides the concrete HCL implementation of config.Loader.
// It parses the file, evaluates its expressions against an `env` object
// holding the process environment, and translates the result into a
// config.File.
package hcl
