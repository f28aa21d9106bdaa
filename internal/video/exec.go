package video

import (
	"context"
	"fmt"
	"os/exec"
)

// runCommand executes an external tool and returns its combined output.
// On failure the captured output rides along in the error so the operator
// sees the tool's own diagnostics.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s failed: %v, output: %s", name, err, string(out))
	}
	return string(out), nil
}
