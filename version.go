package swaplock

// Version is set by the build flags:
//
//	go build -ldflags "-X github.com/lockboxlabs/swaplock.Version=v0.4.0"
var Version = "development"
