package launcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `
loading data from /raid/datasets/wiki
:::MLLOG {"namespace": "", "time_ms": 1756649000000, "event_type": "POINT_IN_TIME", "key": "submission_benchmark", "value": "bert", "metadata": {"file": "model_train.py", "lineno": 100}}
:::MLLOG {"namespace": "", "time_ms": 1756649000001, "event_type": "POINT_IN_TIME", "key": "submission_platform", "value": "tinybox_red", "metadata": {"file": "model_train.py", "lineno": 101}}
:::MLLOG {"namespace": "", "time_ms": 1756649100000, "event_type": "INTERVAL_START", "key": "run_start", "value": null, "metadata": {"file": "model_train.py", "lineno": 200}}
step 100 loss 4.2
:::MLLOG {"namespace": "", "time_ms": 1756650000000, "event_type": "POINT_IN_TIME", "key": "eval_accuracy", "value": 0.68, "metadata": {"epoch_num": 1}}
not a mllog line
:::MLLOG {"namespace": "", "time_ms": 1756651000000, "event_type": "POINT_IN_TIME", "key": "eval_accuracy", "value": 0.721, "metadata": {"epoch_num": 2}}
:::MLLOG {"namespace": "", "time_ms": 1756651200000, "event_type": "INTERVAL_END", "key": "run_stop", "value": null, "metadata": {"status": "success"}}
`

func TestParse(t *testing.T) {
	rs, err := Parse(sampleOutput)
	require.NoError(t, err)

	assert.Equal(t, "bert", rs.Benchmark)
	assert.Equal(t, "tinybox_red", rs.Platform)
	assert.Equal(t, "success", rs.Status)
	assert.True(t, rs.Success())

	assert.Equal(t, time.UnixMilli(1756649100000).UTC(), rs.RunStart)
	assert.Equal(t, time.UnixMilli(1756651200000).UTC(), rs.RunStop)
	assert.Equal(t, 2100*time.Second, rs.WallClock)

	assert.Equal(t, 0.721, rs.EvalAccuracy)
	assert.Equal(t, 2, rs.Evals)
}

func TestParseEmpty(t *testing.T) {
	rs, err := Parse("no markers at all\njust training noise\n")
	require.NoError(t, err)
	assert.Zero(t, rs.WallClock)
	assert.False(t, rs.Success())
}

func TestParseMalformedPayload(t *testing.T) {
	rs, err := Parse(":::MLLOG {not json}\n:::MLLOG {\"key\": \"run_start\", \"time_ms\": 1000}\n")
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1000).UTC(), rs.RunStart)
}

func TestToCSV(t *testing.T) {
	rs, err := Parse(sampleOutput)
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, ToCSV(p, rs))

	d, err := os.ReadFile(p)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(d)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "benchmark,platform,status,run-start,run-stop,wall-clock,eval-accuracy,evals", lines[0])
	assert.Contains(t, lines[1], "bert,tinybox_red,success")
	assert.Contains(t, lines[1], "0.72100")
}
