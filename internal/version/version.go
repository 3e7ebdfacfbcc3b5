package version

// Version is set at build time with -ldflags "-X github.com/tozahudud/binbot/internal/version.Version=...".
var Version = "dev"
