// Package config defines the format-agnostic model of a certgen config file
// and the Loader interface that concrete formats implement.
//
// Every field of File is optional. The app package layers a File between its
// built-in defaults and explicit command-line flags.
package config
