package version

import "fmt"

const (
	major = 0
	minor = 2
	patch = 1
)

// Current returns the tool version.
func Current() string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}
