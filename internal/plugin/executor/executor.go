// Package executor runs external exporter plugins regardless of their
// underlying protocol (go-plugin RPC or JSON-stdio).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/tonal/internal/plugin/protocol"
	"github.com/jmylchreest/tonal/pkg/plugin"
)

// DefaultTimeout bounds a single Execute call.
const DefaultTimeout = 30 * time.Second

// JSONOutputFile names the file produced when a json-stdio plugin writes
// plain text instead of a JSONResponse.
const JSONOutputFile = "output.txt"

// PluginExecutor provides a unified interface for executing plugins.
type PluginExecutor struct {
	path         string
	info         protocol.PluginInfo
	protocolType protocol.PluginType
	runner       ProcessRunner
	logger       hclog.Logger
	verbose      bool
	timeout      time.Duration

	client    *goplugin.Client
	rpcClient *plugin.ExporterPluginRPCClient
}

// Option configures a PluginExecutor.
type Option func(*PluginExecutor)

// WithRunner sets the process runner used for detection and json-stdio plugins.
func WithRunner(runner ProcessRunner) Option {
	return func(e *PluginExecutor) {
		e.runner = runner
	}
}

// WithLogger sets the logger executions are reported to.
func WithLogger(logger hclog.Logger) Option {
	return func(e *PluginExecutor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithVerbose forwards go-plugin's own logging at debug level.
func WithVerbose(verbose bool) Option {
	return func(e *PluginExecutor) {
		e.verbose = verbose
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *PluginExecutor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

func newExecutor(pluginPath string, opts []Option) *PluginExecutor {
	e := &PluginExecutor{
		path:    pluginPath,
		runner:  NewRealProcessRunner(),
		logger:  hclog.NewNullLogger(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New creates a PluginExecutor by querying the plugin for its protocol.
func New(ctx context.Context, pluginPath string, opts ...Option) (*PluginExecutor, error) {
	e := newExecutor(pluginPath, opts)

	detectCtx, cancel := context.WithTimeout(ctx, protocol.DetectTimeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(detectCtx, pluginPath, []string{plugin.InfoFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin %s: %w%s", pluginPath, err, stderrSuffix(stderr))
	}

	result, err := protocol.ParseInfo(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	e.info = result.PluginInfo
	e.protocolType = result.Type
	e.logger.Debug("detected plugin", "path", pluginPath, "name", e.info.Name, "protocol", e.protocolType)
	return e, nil
}

// NewWithProtocol creates a PluginExecutor for a plugin whose protocol is
// already known, skipping detection.
func NewWithProtocol(pluginPath string, protocolType protocol.PluginType, opts ...Option) *PluginExecutor {
	e := newExecutor(pluginPath, opts)
	e.protocolType = protocolType
	return e
}

// Info returns the metadata reported by the plugin during detection.
func (e *PluginExecutor) Info() protocol.PluginInfo {
	return e.info
}

// Protocol returns the protocol used to talk to the plugin.
func (e *PluginExecutor) Protocol() protocol.PluginType {
	return e.protocolType
}

// Execute runs the plugin against data and returns the generated files.
func (e *PluginExecutor) Execute(ctx context.Context, data plugin.TokenData) (map[string][]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	var (
		files map[string][]byte
		err   error
	)
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		files, err = e.executeGoPlugin(ctx, data)
	case protocol.PluginTypeJSON:
		files, err = e.executeJSON(ctx, data)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return nil, err
	}

	e.logger.Debug("plugin executed", "path", e.path, "files", len(files), "duration", time.Since(start))
	return files, nil
}

// Close cleans up any resources held by the executor.
func (e *PluginExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// --- Go-Plugin RPC implementation ---

func (e *PluginExecutor) pluginLogger() hclog.Logger {
	if e.verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "plugin",
			Output: os.Stderr,
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "plugin",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

func (e *PluginExecutor) getRPCClient() (*plugin.ExporterPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.PluginName: &plugin.ExporterPluginRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.pluginLogger(),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginName)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*plugin.ExporterPluginRPCClient)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.rpcClient = client
	return client, nil
}

func (e *PluginExecutor) executeGoPlugin(ctx context.Context, data plugin.TokenData) (map[string][]byte, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return nil, err
	}

	files, err := client.Generate(ctx, data)
	if err != nil && ctx.Err() != nil {
		// The RPC call may still be running; the process is no longer usable.
		e.Close()
	}
	return files, err
}

// --- JSON-stdio implementation ---

func (e *PluginExecutor) executeJSON(ctx context.Context, data plugin.TokenData) (map[string][]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token data: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}

	return decodeJSONResponse(stdout), nil
}

// decodeJSONResponse reads a JSONResponse, treating any other non-empty
// output as a single text file.
func decodeJSONResponse(stdout []byte) map[string][]byte {
	result := make(map[string][]byte)

	var resp plugin.JSONResponse
	if err := json.Unmarshal(stdout, &resp); err == nil && resp.Files != nil {
		for name, content := range resp.Files {
			result[name] = []byte(content)
		}
		return result
	}

	if len(bytes.TrimSpace(stdout)) > 0 {
		result[JSONOutputFile] = stdout
	}
	return result
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return "\nStderr: " + msg
}
