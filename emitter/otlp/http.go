package otlp

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/http2"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricspb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
)

// httpTransport ships OTLP/HTTP requests (§4.8 "HTTP framing": plain
// request body, success is any 2xx). It is configured to speak
// cleartext HTTP/2 (h2c) when the endpoint is not TLS, matching the
// golang.org/x/net/http2 "AllowHTTP" transport option — OTLP/HTTP
// collectors commonly accept h2c for the protobuf/JSON endpoints
// rather than requiring HTTP/1.1.
type httpTransport struct {
	cfg    SignalConfig
	client *http.Client
}

func newHTTPTransport(cfg SignalConfig) *httpTransport {
	h2 := &http2.Transport{
		AllowHTTP: true,
		DialTLSContext: func(ctx context.Context, network, addr string, tlsCfg *tls.Config) (net.Conn, error) {
			if usesTLS(cfg.Endpoint) {
				d := &tls.Dialer{Config: tlsCfg}
				return d.DialContext(ctx, network, addr)
			}
			var d net.Dialer
			return d.DialContext(ctx, network, addr)
		},
	}
	return &httpTransport{cfg: cfg, client: &http.Client{Transport: h2, Timeout: 30 * time.Second}}
}

func (t *httpTransport) SendTraces(ctx context.Context, req *coltracepb.ExportTraceServiceRequest) (bool, error) {
	return t.send(ctx, "/v1/traces", req)
}

func (t *httpTransport) SendLogs(ctx context.Context, req *collogspb.ExportLogsServiceRequest) (bool, error) {
	return t.send(ctx, "/v1/logs", req)
}

func (t *httpTransport) SendMetrics(ctx context.Context, req *colmetricspb.ExportMetricsServiceRequest) (bool, error) {
	return t.send(ctx, "/v1/metrics", req)
}

func (t *httpTransport) send(ctx context.Context, path string, msg proto.Message) (bool, error) {
	var body []byte
	var err error
	contentType := "application/x-protobuf"
	if t.cfg.Encoding == EncodingJSON {
		body, err = protojson.Marshal(msg)
		contentType = "application/json"
	} else {
		body, err = proto.Marshal(msg)
	}
	if err != nil {
		return false, err
	}

	var reader io.Reader = bytes.NewReader(body)
	contentEncoding := ""
	// §4.8 "Compression": gzip when enabled, skipped for https schemes
	// since TLS already compresses/encrypts the wire redundantly.
	if t.cfg.Compress && !usesTLS(t.cfg.Endpoint) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, werr := gz.Write(body); werr != nil {
			return false, werr
		}
		if cerr := gz.Close(); cerr != nil {
			return false, cerr
		}
		reader = &buf
		contentEncoding = "gzip"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.Endpoint+path, reader)
	if err != nil {
		return false, err
	}
	httpReq.Header.Set("Content-Type", contentType)
	if contentEncoding != "" {
		httpReq.Header.Set("Content-Encoding", contentEncoding)
	}
	for k, v := range t.cfg.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return false, nil
	}
	// Every non-2xx status is retryable, as is any transport error above.
	return true, httpStatusError(resp.StatusCode)
}

func httpStatusError(code int) error {
	return &statusError{code: code}
}

type statusError struct{ code int }

func (e *statusError) Error() string { return "otlp: http status " + strconv.Itoa(e.code) }

func usesTLS(endpoint string) bool {
	return len(endpoint) >= 8 && endpoint[:8] == "https://"
}
