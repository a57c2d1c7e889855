//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"

	// mage utility functions
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary     = "jtc"
	mainPkg    = "./cmd/jtc"
	schemaFile = "schema/jtc-config.json"
)

func init() {
	os.Setenv("GO111MODULE", "on")
}

// ldflags stamps the version, commit and build date into the binary.
func ldflags() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "none"
	}
	date, err := sh.Output("date", "-u", "+%Y-%m-%dT%H:%M:%SZ")
	if err != nil {
		date = "unknown"
	}
	return strings.Join([]string{
		"-s", "-w",
		"-X main.version=" + version,
		"-X main.commit=" + commit,
		"-X main.date=" + date,
	}, " ")
}

// InstallDeps downloads the Go module dependencies.
func InstallDeps() error {
	fmt.Println(color.YellowString("Installing dependencies."))
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return fmt.Errorf("failed to download modules: %w", err)
	}
	return nil
}

// Compile builds bin/jtc for GOOS/GOARCH, defaulting to the host platform.
//
// Example usage:
//
// ```go
// GOOS=darwin GOARCH=arm64 VERSION=v0.2.0 mage compile
// ```
func Compile() error {
	mg.Deps(InstallDeps)

	goos := os.Getenv("GOOS")
	if goos == "" {
		goos = runtime.GOOS
	}
	goarch := os.Getenv("GOARCH")
	if goarch == "" {
		goarch = runtime.GOARCH
	}

	out := filepath.Join("bin", binary)
	if goos == "windows" {
		out += ".exe"
	}

	fmt.Printf("Compiling the %s binary for %s/%s, please wait.\n", binary, goos, goarch)
	env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
	if err := sh.RunWithV(env, "go", "build", "-ldflags", ldflags(), "-o", out, mainPkg); err != nil {
		return fmt.Errorf("failed to compile %s: %w", binary, err)
	}
	fmt.Println(color.GreenString("Built %s", out))
	return nil
}

// RunTests executes all unit tests with the race detector.
func RunTests() error {
	fmt.Println("Running unit tests.")
	if err := sh.RunV("go", "test", "-race", "-count=1", "./..."); err != nil {
		return fmt.Errorf("failed to run unit tests: %w", err)
	}
	return nil
}

// Lint runs golangci-lint when it is installed and go vet otherwise.
func Lint() error {
	if _, err := sh.Output("golangci-lint", "--version"); err == nil {
		return sh.RunV("golangci-lint", "run", "./...")
	}
	fmt.Println(color.YellowString("golangci-lint not found, running go vet."))
	return sh.RunV("go", "vet", "./...")
}

// GenerateSchema regenerates the JSON schema of the config file.
func GenerateSchema() error {
	if err := sh.RunV("go", "run", "./cmd/schema-gen", "-o", schemaFile); err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}
	return nil
}

// DeleteReleaseAndTag deletes a GitHub release and its corresponding tag.
//
// Example usage:
//
// ```go
// mage deletereleaseandtag v1.0.5
// ```
func DeleteReleaseAndTag(tag string) error {
	fmt.Println(color.YellowString("Deleting GitHub release and tag: %s", tag))

	if err := sh.RunV("gh", "release", "delete", tag, "--yes"); err != nil {
		return fmt.Errorf("failed to delete GitHub release: %w", err)
	}
	if err := sh.RunV("git", "tag", "-d", tag); err != nil {
		return fmt.Errorf("failed to delete local tag: %w", err)
	}
	if err := sh.RunV("git", "push", "origin", "--delete", tag); err != nil {
		return fmt.Errorf("failed to delete remote tag: %w", err)
	}

	fmt.Println(color.GreenString("Successfully deleted GitHub release and tag: %s", tag))
	return nil
}

// CreateRelease creates a new GitHub release and updates the CHANGELOG.
//
// Example usage:
//
// ```go
// mage createrelease v1.0.6
// ```
func CreateRelease(nextVersion string) error {
	mg.Deps(RunTests)
	fmt.Println(color.YellowString("Creating new GitHub release: %s", nextVersion))

	if err := sh.RunV("gh", "changelog", "new", "--next-version", nextVersion); err != nil {
		return fmt.Errorf("failed to create changelog: %w", err)
	}
	if err := sh.RunV("gh", "release", "create", nextVersion, "-F", "CHANGELOG.md"); err != nil {
		return fmt.Errorf("failed to create GitHub release: %w", err)
	}

	fmt.Println(color.GreenString("Successfully created GitHub release: %s", nextVersion))
	return nil
}
