package version

// Version is set at build time with -ldflags "-X tmcalc/internal/version.Version=...".
var Version = "dev"
