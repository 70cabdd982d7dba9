package version

const version = "1.0.0"

// Version returns the current release version.
func Version() string {
	return version
}
