package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/prune"
)

// Run executes the prune command.
func (c *PruneCmd) Run(deps *Dependencies) error {
	inputs, err := c.loadInputs(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipprune.ErrorMessage(err))
		return err
	}

	progress := func(event prune.ProgressEvent) {
		switch event.Type {
		case prune.ProgressCompleted:
			if c.Out != "" {
				fmt.Fprintf(deps.Stderr, "  [%d/%d] %s %s\n",
					event.Completed, event.Total, event.Status, prune.TruncateURL(event.URL, 60))
			}
		case prune.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, clipprune.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Clipper.ClipAll(deps.Ctx, inputs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipprune.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		fmt.Fprintf(deps.Stdout, "Wrote %d clips to %s (%s)\n", result.Written, c.Out, prune.FormatBytes(result.Bytes))
	}
	if result.Failed > 0 {
		return clipprune.Errorf(clipprune.EFETCH, "%d of %d inputs failed", result.Failed, len(inputs))
	}
	return nil
}

// loadInputs turns the arguments into pipeline inputs. URLs are fetched by
// the clipper; files and stdin are read here and take their page URL from
// --url.
func (c *PruneCmd) loadInputs(stdin io.Reader) ([]prune.Input, error) {
	var local int
	for _, arg := range c.Inputs {
		if !isURL(arg) {
			local++
		}
	}
	if c.URL != "" && local > 1 {
		return nil, clipprune.Errorf(clipprune.EINVALID, "--url applies to a single file or stdin input, got %d", local)
	}

	inputs := make([]prune.Input, 0, len(c.Inputs))
	for _, arg := range c.Inputs {
		if isURL(arg) {
			inputs = append(inputs, prune.Input{URL: arg})
			continue
		}

		var raw []byte
		var err error
		if arg == "-" {
			raw, err = io.ReadAll(stdin)
		} else {
			raw, err = os.ReadFile(arg)
		}
		if err != nil {
			return nil, clipprune.WrapError(clipprune.EINVALID, err, "read %s: %v", arg, err)
		}
		if len(strings.TrimSpace(string(raw))) == 0 {
			return nil, clipprune.Errorf(clipprune.EINVALID, "input %s is empty", arg)
		}

		pageURL := c.URL
		if pageURL == "" {
			pageURL = fileURL(arg)
		}
		inputs = append(inputs, prune.Input{URL: pageURL, HTML: string(raw)})
	}
	return inputs, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fileURL(path string) string {
	if path == "-" {
		return "file:///dev/stdin"
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}
