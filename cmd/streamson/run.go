package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/xenking/streamson"
	"github.com/xenking/streamson/handler"
)

type runOpts struct {
	// extract decorations
	before    string
	after     string
	separator string
	extract   bool
}

// run pumps stdin through the strategy and writes data records to stdout.
// When stdout is a terminal, output is flushed after every record so pipes
// into pagers produce feedback early.
func run(cmd *cobra.Command, st streamson.Strategy, b *buildState, opts runOpts) error {
	size, err := cmd.Flags().GetInt("buffer-size")
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	flushEach := isatty.IsTerminal(os.Stdout.Fd())

	if opts.extract && opts.before != "" {
		if _, err := out.WriteString(opts.before); err != nil {
			return err
		}
	}

	first := true
	err = streamson.ProcessReader(st, os.Stdin, size, func(o streamson.Output) error {
		switch o.Kind {
		case streamson.OutputStart:
			if opts.extract {
				if first {
					first = false
				} else if opts.separator != "" {
					if _, err := out.WriteString(opts.separator); err != nil {
						return err
					}
				}
			}
		case streamson.OutputData:
			if _, err := out.Write(o.Data); err != nil {
				return err
			}
			if flushEach {
				return out.Flush()
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if opts.extract && opts.after != "" {
		if _, err := out.WriteString(opts.after); err != nil {
			return err
		}
	}
	if err := out.Flush(); err != nil {
		return err
	}

	reportAnalysers(b.analysers)
	return nil
}

func reportAnalysers(analysers []*handler.Analyser) {
	for _, a := range analysers {
		fmt.Fprintln(os.Stderr, "JSON structure:")
		for _, pc := range a.Results() {
			name := pc.Path
			if name == "" {
				name = "<root>"
			}
			fmt.Fprintf(os.Stderr, "  %s: %d\n", name, pc.Count)
		}
	}
}

func extractCmd() *cobra.Command {
	var matchers, handlers []string
	var before, after, separator string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Pass only matched parts of the JSON input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := buildFlags(matchers, handlers, strategyExtract)
			if err != nil {
				return err
			}
			defer b.close()
			st := streamson.NewExtract()
			for _, g := range b.groups {
				st.AddMatcher(g.matcher, g.bindingHandler())
			}
			return run(cmd, st, b, runOpts{
				before:    before,
				after:     after,
				separator: separator,
				extract:   true,
			})
		},
	}
	strategyFlags(cmd, &matchers, &handlers, true)
	cmd.Flags().StringVarP(&before, "before", "b", "", "printed before all matched outputs")
	cmd.Flags().StringVarP(&after, "after", "a", "", "printed after all matched outputs")
	cmd.Flags().StringVarP(&separator, "separator", "S", "", "printed between adjacent matched outputs")
	return cmd
}

func filterCmd() *cobra.Command {
	var matchers, handlers []string
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Remove matched parts of the JSON input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := buildFlags(matchers, handlers, strategyFilter)
			if err != nil {
				return err
			}
			defer b.close()
			st := streamson.NewFilter()
			for _, g := range b.groups {
				st.AddMatcher(g.matcher, g.bindingHandler())
			}
			return run(cmd, st, b, runOpts{})
		},
	}
	strategyFlags(cmd, &matchers, &handlers, true)
	return cmd
}

func convertCmd() *cobra.Command {
	var matchers, handlers []string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert matched parts of the JSON input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := buildFlags(matchers, handlers, strategyConvert)
			if err != nil {
				return err
			}
			defer b.close()
			st := streamson.NewConvert()
			for _, g := range b.groups {
				st.AddMatcher(g.matcher, g.bindingHandler())
			}
			return run(cmd, st, b, runOpts{})
		},
	}
	strategyFlags(cmd, &matchers, &handlers, true)
	return cmd
}

func triggerCmd() *cobra.Command {
	var matchers, handlers []string
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Trigger handlers on matched input, passing it through",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := buildFlags(matchers, handlers, strategyTrigger)
			if err != nil {
				return err
			}
			defer b.close()
			st := streamson.NewTrigger()
			for _, g := range b.groups {
				st.AddMatcher(g.matcher, g.bindingHandler())
			}
			return run(cmd, st, b, runOpts{})
		},
	}
	strategyFlags(cmd, &matchers, &handlers, true)
	return cmd
}

func allCmd() *cobra.Command {
	var handlers []string
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run handlers against every element of the JSON input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := buildFlags(nil, handlers, strategyAll)
			if err != nil {
				return err
			}
			defer b.close()
			convert := false
			for _, g := range b.groups {
				if h := g.bindingHandler(); h != nil && h.IsConverter() {
					convert = true
				}
			}
			st := streamson.NewAll(convert)
			for _, g := range b.groups {
				if h := g.bindingHandler(); h != nil {
					st.AddHandler(h)
				}
			}
			return run(cmd, st, b, runOpts{})
		},
	}
	strategyFlags(cmd, nil, &handlers, false)
	return cmd
}
