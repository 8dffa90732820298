// internal/version/version.go
package version

// Version is stamped at build time via -ldflags "-X ...version.Version=v1.2.3".
var Version = "dev"
