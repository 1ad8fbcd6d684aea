// Package orrery exposes module-level metadata.
package orrery

// Version is the current Orrery release version.
const Version = "0.3.0"
