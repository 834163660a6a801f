package launcher

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// mllogPrefix marks MLPerf-format result lines in the training output.
const mllogPrefix = ":::MLLOG"

// Result holds the MLPerf result markers extracted from one benchmark log.
// Markers missing from the log leave the corresponding fields zero-valued.
type Result struct {
	// Benchmark is the submission benchmark tag (e.g. "bert").
	Benchmark string
	// Platform is the submission platform tag.
	Platform string
	// Status is the run_stop status ("success" or "aborted").
	Status string

	// RunStart is the run_start marker timestamp.
	RunStart time.Time
	// RunStop is the run_stop marker timestamp.
	RunStop time.Time
	// WallClock is RunStop minus RunStart, the benchmark result.
	WallClock time.Duration

	// EvalAccuracy is the last reported evaluation accuracy.
	EvalAccuracy float64
	// Evals is the number of eval_accuracy markers seen.
	Evals int
}

// Success returns true when the timed run reached its quality target.
func (rs Result) Success() bool { return rs.Status == "success" }

type mllogEntry struct {
	TimeMS    int64           `json:"time_ms"`
	EventType string          `json:"event_type"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Metadata  map[string]any  `json:"metadata"`
}

// Parse scans training output for MLPerf result lines.
// Unparseable lines are skipped; structured output from a long-running
// training process is best-effort.
func Parse(s string) (rs Result, err error) {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, mllogPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, mllogPrefix))
		var entry mllogEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			continue
		}

		switch entry.Key {
		case "submission_benchmark":
			var v string
			if err := json.Unmarshal(entry.Value, &v); err == nil {
				rs.Benchmark = v
			}

		case "submission_platform":
			var v string
			if err := json.Unmarshal(entry.Value, &v); err == nil {
				rs.Platform = v
			}

		case "run_start":
			rs.RunStart = time.UnixMilli(entry.TimeMS).UTC()

		case "run_stop":
			rs.RunStop = time.UnixMilli(entry.TimeMS).UTC()
			if v, ok := entry.Metadata["status"].(string); ok {
				rs.Status = v
			}

		case "eval_accuracy":
			var v float64
			if err := json.Unmarshal(entry.Value, &v); err == nil {
				rs.EvalAccuracy = v
				rs.Evals++
			}
		}
	}

	if !rs.RunStart.IsZero() && !rs.RunStop.IsZero() {
		rs.WallClock = rs.RunStop.Sub(rs.RunStart)
	}
	return rs, nil
}

// ParseFile parses MLPerf result lines from a benchmark log file.
func ParseFile(p string) (Result, error) {
	d, err := os.ReadFile(p)
	if err != nil {
		return Result{}, err
	}
	return Parse(string(d))
}

var header = []string{
	"benchmark",
	"platform",
	"status",
	"run-start",
	"run-stop",
	"wall-clock",
	"eval-accuracy",
	"evals",
}

// ToCSV writes a list of Result to a CSV file.
func ToCSV(output string, rss ...Result) error {
	rows := make([][]string, 0, len(rss))
	for _, v := range rss {
		rows = append(rows, []string{
			v.Benchmark,                         // "benchmark"
			v.Platform,                          // "platform"
			v.Status,                            // "status"
			v.RunStart.Format(time.RFC3339),     // "run-start"
			v.RunStop.Format(time.RFC3339),      // "run-stop"
			fmt.Sprintf("%v", v.WallClock),      // "wall-clock"
			fmt.Sprintf("%.5f", v.EvalAccuracy), // "eval-accuracy"
			fmt.Sprintf("%d", v.Evals),          // "evals"
		})
	}

	f, err := os.OpenFile(output, os.O_RDWR|os.O_TRUNC, 0600)
	if err != nil {
		f, err = os.Create(output)
		if err != nil {
			return err
		}
	}
	defer f.Close()

	wr := csv.NewWriter(f)
	if err := wr.Write(header); err != nil {
		return err
	}
	if err := wr.WriteAll(rows); err != nil {
		return err
	}
	wr.Flush()
	return wr.Error()
}
