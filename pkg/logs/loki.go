package logs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Alijeyrad/stomatology_backend/config"
)

const lokiPushPath = "/loki/api/v1/push"

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

type lokiPush struct {
	Streams []lokiStream `json:"streams"`
}

// lokiWriter pushes every write as one line of a single Loki stream. The
// JSON handler in front of it writes exactly one record per call.
type lokiWriter struct {
	endpoint string
	username string
	password string
	labels   map[string]string
	client   *http.Client
	now      func() time.Time
}

func newLokiWriter(cfg *config.Config, service string) *lokiWriter {
	loki := cfg.Logging.Output.Loki
	return &lokiWriter{
		endpoint: strings.TrimRight(loki.Endpoint, "/") + lokiPushPath,
		username: loki.Username,
		password: loki.Password,
		labels:   map[string]string{"service": service, "env": cfg.Server.Environment},
		client:   &http.Client{Timeout: 3 * time.Second},
		now:      time.Now,
	}
}

func newLokiHandler(cfg *config.Config, service string, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(newLokiWriter(cfg, service), &slog.HandlerOptions{Level: level})
}

func (lw *lokiWriter) Write(p []byte) (int, error) {
	body, err := json.Marshal(lokiPush{Streams: []lokiStream{{
		Stream: lw.labels,
		Values: [][2]string{{
			strconv.FormatInt(lw.now().UnixNano(), 10),
			string(bytes.TrimRight(p, "\n")),
		}},
	}}})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, lw.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if lw.username != "" {
		req.SetBasicAuth(lw.username, lw.password)
	}

	resp, err := lw.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("loki push: %s", resp.Status)
	}
	return len(p), nil
}
