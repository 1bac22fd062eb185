// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X .../internal/version.Version=v0.3.0 \
//	    -X .../internal/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	    -X .../internal/version.GoVersion=$(go version | cut -d' ' -f3)"
package version

var (
	AppName        = "Steward"
	AppDescription = "A modular Discord guild bot with per-guild feature toggles and an interactive help menu"

	Version   = "dev"
	BuildDate = ""
	GoVersion = ""
)
