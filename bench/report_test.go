package bench

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"benchkit/perf"
)

// A result covering exactly 2 virtual seconds at m=1000 over a 4096
// byte input, with counters at 3 cycles and 6 instructions per byte.
func sampleResult(withCounters bool) Result {
	res := Result{
		Start: perf.Point{Sec: 5, Nsec: 500_000_000},
		End:   perf.Point{Sec: 7, Nsec: 500_000_000},
		M:     1000,
		N:     4096,
	}
	if withCounters {
		const perByte = 4096 * 1000
		res.Start.Counters = []uint64{1_000_000, 2_000_000}
		res.End.Counters = []uint64{1_000_000 + 3*perByte, 2_000_000 + 6*perByte}
	}
	return res
}

func TestReportTimingOnly(t *testing.T) {
	var out bytes.Buffer
	r := &Reporter{W: &out}

	c := Case{Label: "ref", Path: "war-and-peace.utf16"}
	require.NoError(t, r.Report(c, sampleResult(false)))

	line := out.String()
	require.Equal(t,
		"BenchmarkRef/war-and-peace.utf16\t      1000\t2e+06 ns/op\t2.048 MB/s\n",
		line)
	require.NotContains(t, line, "cy/B")
	require.NotContains(t, line, "ins/B")
	require.NotContains(t, line, "ipc")
	require.True(t, strings.HasSuffix(line, "\n"))
	require.Equal(t, 1, strings.Count(line, "\n"))
}

func TestReportWithHardwareColumns(t *testing.T) {
	var out bytes.Buffer
	r := &Reporter{W: &out, Hardware: true}

	c := Case{Label: "unrolled", Path: "input.bin"}
	require.NoError(t, r.Report(c, sampleResult(true)))

	line := out.String()
	require.Equal(t,
		"BenchmarkUnrolled/input.bin\t      1000\t2e+06 ns/op\t2.048 MB/s\t3 cy/B\t6 ins/B\t2 ipc\n",
		line)
}

// A reporter configured for hardware but handed a timing-only point
// must omit the whole column group, never emit it partially.
func TestReportHardwareAllOrNothing(t *testing.T) {
	var out bytes.Buffer
	r := &Reporter{W: &out, Hardware: true}

	res := sampleResult(true)
	res.Start.Counters = res.Start.Counters[:1]
	res.End.Counters = res.End.Counters[:1]

	require.NoError(t, r.Report(Case{Label: "ref", Path: "f"}, res))
	line := out.String()
	require.NotContains(t, line, "cy/B")
	require.NotContains(t, line, "ins/B")
	require.NotContains(t, line, "ipc")
}

func TestReportIPCConsistency(t *testing.T) {
	m := derive(sampleResult(true), true)
	require.InEpsilon(t, m.InsPerByte/m.CyclesPerByte, m.IPC, 1e-12)
}

func TestBenchLabel(t *testing.T) {
	require.Equal(t, "Ref", benchLabel("ref"))
	require.Equal(t, "Avx512", benchLabel("avx512"))
	require.Equal(t, "X", benchLabel("x"))
	require.Equal(t, "Écho", benchLabel("écho"))
	require.Equal(t, " ", benchLabel(""))
}

func TestFailLine(t *testing.T) {
	var out bytes.Buffer
	r := &Reporter{W: &out}
	r.Fail("decoder")
	require.Equal(t, "FAIL\tdecoder\n", out.String())
}

func TestReportJSON(t *testing.T) {
	var out bytes.Buffer
	r := &Reporter{W: &out, Hardware: true, JSON: true}

	require.NoError(t, r.Report(Case{Label: "ref", Path: "input.bin"}, sampleResult(true)))

	var got jsonResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, "Ref", got.Name)
	require.Equal(t, "input.bin", got.File)
	require.Equal(t, uint64(1000), got.Iterations)
	require.InDelta(t, 2e6, got.NsPerOp, 1e-3)
	require.NotNil(t, got.Hardware)
	require.InDelta(t, 2.0, got.Hardware.IPC, 1e-12)
}

func TestReportJSONOmitsHardwareWhenAbsent(t *testing.T) {
	var out bytes.Buffer
	r := &Reporter{W: &out, JSON: true}

	require.NoError(t, r.Report(Case{Label: "ref", Path: "input.bin"}, sampleResult(false)))
	require.NotContains(t, out.String(), "hardware")
}
