// Package domain contains the core business entities for Briefwise.
// Types here are free of infrastructure concerns; adapters translate
// provider-specific representations into these entities.
package domain
