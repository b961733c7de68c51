package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Output is where log lines go. Tests may swap it; writes are serialized.
var (
	mu     sync.Mutex
	Output io.Writer = os.Stdout
)

// Info emits an info-level line with the given fields.
func Info(msg string, fields map[string]any) {
	emit("info", msg, fields)
}

// Error emits an error-level line with the given fields.
func Error(msg string, fields map[string]any) {
	emit("error", msg, fields)
}

func emit(level, msg string, fields map[string]any) {
	line := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		line[k] = v
	}
	line["ts"] = time.Now().UTC().Format(time.RFC3339)
	line["level"] = level
	line["msg"] = msg

	data, err := json.Marshal(line)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":"error","msg":"log marshal failed","err":%q}`, err.Error()))
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(Output, string(data))
}
