package version

// GitVersion is stamped at build time:
//
//	go build -ldflags "-X github.com/Edwardzzz-c/gotrak/pkg/version.GitVersion=$(git describe --tags --always)"
var GitVersion = "dev"
