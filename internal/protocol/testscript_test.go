package protocol

import "os"

// writeExecutable writes contents to path with the executable bit set, for
// building throwaway shell "engines" in tests.
func writeExecutable(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o755)
}
