package finder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lakshaymaurya-felt/nmkill/internal/logging"
)

// invocation is one external search process.
type invocation struct {
	dir  string
	exe  string
	args []string
}

// runFunc executes an invocation and returns its stdout.
type runFunc func(ctx context.Context, inv invocation) ([]byte, error)

// Command shells out to the platform's own search utility:
// find on Unix-likes, mdfind on macOS and dir on Windows.
type Command struct {
	goos  string
	roots []string
	run   runFunc
	log   *logging.Logger
}

// NewCommand returns the utility-backed finder for goos, or
// ErrScanUnsupported when no utility is known for it.
func NewCommand(goos string, opts Options) (*Command, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "darwin", "windows":
	default:
		return nil, fmt.Errorf("%w: %s", ErrScanUnsupported, goos)
	}
	return &Command{
		goos:  goos,
		roots: opts.Roots,
		run:   execRun,
		log:   opts.Logger,
	}, nil
}

// invocations builds the process list that searches all roots for name.
func (c *Command) invocations(name string) []invocation {
	switch c.goos {
	case "windows":
		// dir searches the working directory, so run it once per drive.
		invs := make([]invocation, 0, len(c.roots))
		for _, root := range c.roots {
			invs = append(invs, invocation{
				dir:  root,
				exe:  "cmd",
				args: []string{"/C", "dir", name, "/AD", "/S", "/B"},
			})
		}
		return invs
	case "darwin":
		return []invocation{{
			exe:  "mdfind",
			args: []string{fmt.Sprintf("kind:folder %q", name)},
		}}
	default:
		args := append([]string{}, c.roots...)
		args = append(args, "-type", "d", "-name", name, "-prune")
		return []invocation{{exe: "find", args: args}}
	}
}

// Find runs the platform utility and keeps only exact name matches.
func (c *Command) Find(ctx context.Context, name string) ([]string, error) {
	var found []string
	for _, inv := range c.invocations(name) {
		c.log.Debug("running %s %s", inv.exe, strings.Join(inv.args, " "))
		out, err := c.run(ctx, inv)
		if err != nil {
			if c.goos == "windows" && isDirNotFound(err, out) {
				continue
			}
			return nil, scanFailed(err)
		}
		found = append(found, parseLines(out, name, c.goos == "windows")...)
	}
	sort.Strings(found)
	return found, nil
}

// parseLines splits utility output into paths whose last element is name.
// Windows output is split on backslashes regardless of the host separator.
func parseLines(out []byte, name string, backslash bool) []string {
	var paths []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if lastElem(line, backslash) != name {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}

func lastElem(p string, backslash bool) string {
	if !backslash {
		return filepath.Base(p)
	}
	p = strings.TrimRight(p, `\/`)
	if i := strings.LastIndexAny(p, `\/`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// isDirNotFound reports dir's "File Not Found" exit, which means zero hits.
func isDirNotFound(err error, out []byte) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(bytes.TrimSpace(out)) == 0
}

func execRun(ctx context.Context, inv invocation) ([]byte, error) {
	cmd := exec.CommandContext(ctx, inv.exe, inv.args...)
	cmd.Dir = inv.dir
	out, err := cmd.Output()
	if err != nil {
		return out, handleExitError(ctx, inv, err)
	}
	return out, nil
}

// handleExitError wraps an exec error with the command and its stderr.
func handleExitError(ctx context.Context, inv invocation, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out: %w", inv.exe, context.DeadlineExceeded)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if len(stderr) > 200 {
			// Truncate at a valid UTF-8 boundary.
			stderr = stderr[:200]
			for len(stderr) > 0 && !utf8.ValidString(stderr) {
				stderr = stderr[:len(stderr)-1]
			}
			stderr += "..."
		}
		if stderr != "" {
			return fmt.Errorf("%s exited with code %d: %s: %w", inv.exe, exitErr.ExitCode(), stderr, err)
		}
		return fmt.Errorf("%s exited with code %d: %w", inv.exe, exitErr.ExitCode(), err)
	}

	return fmt.Errorf("run %s: %w", inv.exe, err)
}
