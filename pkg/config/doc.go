// Package config loads typed configuration structs from environment
// variables, with an optional .env file for local development.
//
// Each struct type is parsed once per process and cached, so packages can
// call Load for their own config independently without re-reading the
// environment or diverging from each other.
package config
