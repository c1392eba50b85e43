package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/mod/semver"
)

type VersionCmd struct{}

func (c *VersionCmd) Run(cfg *commandContext) error {
	version := "devel"
	if info, ok := debug.ReadBuildInfo(); ok && semver.IsValid(info.Main.Version) {
		version = info.Main.Version
	}

	fmt.Printf("sitectl %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
