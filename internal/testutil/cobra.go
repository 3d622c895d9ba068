package testutil

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs c with args and returns everything written to stdout, which
// includes the JSON log lines and the command output. Every flag in the
// command tree is reset to its default first, so values set by an earlier
// run do not leak into this one.
func Execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	if err := ResetFlags(c.Root()); err != nil {
		t.Fatal(err)
	}

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	c.SetOut(w)
	c.SetErr(w)
	c.SetArgs(args)
	err = c.Execute()
	c.SetOut(nil)
	c.SetErr(nil)

	w.Close()
	os.Stdout = old
	out := <-outC

	return strings.TrimSpace(out), err
}

// ResetFlags restores every local and persistent flag of c and its
// subcommands to its default value and clears its changed state.
func ResetFlags(c *cobra.Command) error {
	var err error
	reset := func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = sv.Replace(nil)
		} else {
			err = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	if err != nil {
		return err
	}
	for _, sub := range c.Commands() {
		if err := ResetFlags(sub); err != nil {
			return err
		}
	}
	return nil
}
