package project

import (
	"fmt"

	"sjavac/internal/version"
)

// DefaultManifest returns the sjava.toml written by "sjavac init".
func DefaultManifest(name string) string {
	requires := ">= 0.1.0"
	if v, err := version.Semver(); err == nil {
		requires = fmt.Sprintf(">= %d.%d.0", v.Major(), v.Minor())
	}
	return fmt.Sprintf(`# s-Java project manifest
[package]
name = %q

[check]
suffix = %q
max-diagnostics = 100
jobs = 0
disk-cache = false
exclude = []

[tool]
requires = %q
`, name, DefaultSuffix, requires)
}

// SampleSource returns a small valid program used by "sjavac init".
func SampleSource() string {
	return `// sample s-Java program
final int limit = 10;
String greeting = "hello";

void count(int n, final boolean verbose) {
    int i = 0;
    while (n && verbose) {
        i = n;
    }
    return;
}

void main() {
    count(limit, true);
    return;
}
`
}
