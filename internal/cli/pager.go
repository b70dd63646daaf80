package cli

import (
	"context"
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"

	"github.com/mithrel/docsmith/internal/present"
	"github.com/mithrel/docsmith/pkg/api"
)

const defaultPager = "less -FRSX"

// renderResult writes res, through $PAGER when paging is enabled and out is
// a terminal.
func renderResult(ctx context.Context, out, errOut io.Writer, res api.GenerationResult, opts present.Options, page bool) error {
	if !page || opts.Mode == present.ModeJSON {
		return present.RenderResult(ctx, out, res, opts)
	}
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderResult(ctx, w, res, opts)
	})
}

func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
