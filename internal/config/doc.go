// Package config loads scamflight settings.
//
// Values come from ~/.scamflight/config.yaml (SCAMFLIGHT_HOME moves the
// directory), an optional .env file in the working directory and
// SCAMFLIGHT_* environment variables, in increasing priority. A project
// may carry its own .scamflight/config.yaml whose top-level sections
// replace the global ones.
package config
