package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"benchkit/bench"
	"benchkit/internal/loadfile"
	"benchkit/perf"
	"benchkit/utf16le"
)

var (
	runTimeGoal time.Duration
	runAlign    bool
	runJSON     bool
	runMethods  []string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().DurationVar(&runTimeGoal, "time-goal", bench.DefaultGoal,
		"Minimum CPU time per measured pass")
	cmd.Flags().BoolVar(&runAlign, "align", false,
		"Align input buffers to a 64-byte boundary")
	cmd.Flags().BoolVar(&runJSON, "json", false, "Emit one JSON object per case")
	cmd.Flags().StringArrayVarP(&runMethods, "method", "m", nil,
		"Routine to benchmark (repeatable, default: all)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Benchmark every registered routine against the given files",
		Long: `The run command benchmarks each selected validation routine once per
input file, sequentially. Per-case failures are reported as FAIL lines
and do not stop the remaining cases or change the exit code.

Example:
  benchkit run war-and-peace.utf16
  benchkit run --time-goal 500ms --align *.utf16
  benchkit run -m ref -m unrolled big.utf16 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			methods, err := selectMethods(runMethods)
			if err != nil {
				return err
			}
			runBench(methods, args)
			return nil
		},
	}
	return cmd
}

// selectMethods resolves --method flags against the registry; no flags
// means every registered routine.
func selectMethods(names []string) ([]utf16le.Method, error) {
	if len(names) == 0 {
		return utf16le.Methods(), nil
	}
	methods := make([]utf16le.Method, 0, len(names))
	for _, name := range names {
		m, ok := utf16le.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown method %q", name)
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// runBench drives every (routine, file) pair. The counter group is
// opened once for the whole run; whether hardware columns appear is
// decided here, once, for every line.
func runBench(methods []utf16le.Method, files []string) {
	group := perf.Open(diag)
	defer group.Close()

	rep := &bench.Reporter{W: os.Stdout, Hardware: group.Complete(), JSON: runJSON}
	drv := &bench.Driver{Sampler: group, Goal: runTimeGoal, Log: diag}

	for _, path := range files {
		st, err := os.Stat(path)
		if err != nil {
			diag.Error("stat input file", "file", path, "err", err)
			continue
		}
		n := st.Size()

		for _, method := range methods {
			// A fresh buffer per case; the previous one is released
			// before the next case starts.
			data, err := loadfile.Elements16(path, n, runAlign)
			if err != nil {
				diag.Error("load input file", "file", path, "err", err)
				rep.Fail(method.Name)
				continue
			}

			c := bench.Case{
				Label:   method.Name,
				Path:    path,
				Routine: method.Validate,
				Data:    data,
				N:       n,
			}
			res, err := drv.Run(c)
			if err != nil {
				diag.Error("measurement aborted", "case", method.Name, "file", path, "err", err)
				rep.Fail(method.Name)
				continue
			}
			if err := rep.Report(c, res); err != nil {
				diag.Error("write result", "err", err)
			}
		}
	}
}
