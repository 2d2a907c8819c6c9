package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"benchkit/perf"
)

// Reporter formats accepted results as one line per case, in the Go
// benchmark text format. Hardware columns are all-or-nothing: they
// appear only when every configured counter opened, never a subset.
type Reporter struct {
	W        io.Writer
	Hardware bool // all configured counters are open
	JSON     bool // machine-readable lines instead of benchmark format
}

// metrics are the derived values of one accepted result.
type metrics struct {
	Elapsed  float64
	NsPerOp  float64
	MBPerSec float64
	// Valid only when hardware columns may be emitted.
	CyclesPerByte float64
	InsPerByte    float64
	IPC           float64
}

func derive(res Result, hardware bool) metrics {
	m := metrics{Elapsed: perf.Elapsed(res.Start, res.End)}
	m.NsPerOp = m.Elapsed * 1e9 / float64(res.M)
	m.MBPerSec = 1e-6 * float64(res.N) * float64(res.M) / m.Elapsed

	if hardware {
		d := perf.Deltas(res.Start, res.End)
		bytes := float64(res.N) * float64(res.M)
		m.CyclesPerByte = float64(d[0]) / bytes
		m.InsPerByte = float64(d[1]) / bytes
		m.IPC = float64(d[1]) / float64(d[0])
	}
	return m
}

// hardwareUsable guards the all-or-nothing column emission: the
// reporter must be configured for hardware AND both points must carry
// the full counter vector.
func (r *Reporter) hardwareUsable(res Result) bool {
	return r.Hardware &&
		len(res.Start.Counters) == perf.NumEvents &&
		len(res.End.Counters) == perf.NumEvents
}

// Report writes the result line for c. Output is line-granular so a
// consumer can stream results as they appear.
func (r *Reporter) Report(c Case, res Result) error {
	hw := r.hardwareUsable(res)
	m := derive(res, hw)

	if r.JSON {
		return r.reportJSON(c, res, m, hw)
	}

	_, err := fmt.Fprintf(r.W, "Benchmark%s/%s\t%10d\t%.8g ns/op\t%.8g MB/s",
		benchLabel(c.Label), c.Path, res.M, m.NsPerOp, m.MBPerSec)
	if err != nil {
		return err
	}
	if hw {
		_, err = fmt.Fprintf(r.W, "\t%.8g cy/B\t%.8g ins/B\t%.8g ipc\n",
			m.CyclesPerByte, m.InsPerByte, m.IPC)
	} else {
		_, err = fmt.Fprintln(r.W)
	}
	return err
}

// Fail marks a case as failed on the result stream. The reason goes to
// diagnostics, not here.
func (r *Reporter) Fail(label string) {
	fmt.Fprintf(r.W, "FAIL\t%s\n", label)
}

type jsonHardware struct {
	CyclesPerByte float64 `json:"cy_per_b"`
	InsPerByte    float64 `json:"ins_per_b"`
	IPC           float64 `json:"ipc"`
}

type jsonResult struct {
	Name       string        `json:"name"`
	File       string        `json:"file"`
	Iterations uint64        `json:"iterations"`
	NsPerOp    float64       `json:"ns_per_op"`
	MBPerSec   float64       `json:"mb_per_s"`
	Hardware   *jsonHardware `json:"hardware,omitempty"`
}

func (r *Reporter) reportJSON(c Case, res Result, m metrics, hw bool) error {
	out := jsonResult{
		Name:       benchLabel(c.Label),
		File:       c.Path,
		Iterations: res.M,
		NsPerOp:    m.NsPerOp,
		MBPerSec:   m.MBPerSec,
	}
	if hw {
		out.Hardware = &jsonHardware{
			CyclesPerByte: m.CyclesPerByte,
			InsPerByte:    m.InsPerByte,
			IPC:           m.IPC,
		}
	}
	return json.NewEncoder(r.W).Encode(out)
}

// benchLabel upper-cases the first rune only; an empty label renders as
// a single space so the line shape stays stable.
func benchLabel(label string) string {
	if label == "" {
		return " "
	}
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + label[size:]
}
