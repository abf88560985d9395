package eval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// Exported symbols the evaluator module must provide. The module receives a
// JSON request in linear memory and returns a packed pointer/length pair to
// a JSON response.
const (
	exportAlloc = "npd_alloc"
	exportFree  = "npd_free"
	exportEval  = "npd_eval"
)

// WASMEvaluator hosts the compiled expression evaluator as a WebAssembly
// module via wazero. The module is the language compiler/executor; this
// type is only the calling convention around it.
type WASMEvaluator struct {
	runtime wazero.Runtime
	module  api.Module
	logger  *zap.Logger

	// Wasm linear memory is single-threaded; calls are serialized.
	mu sync.Mutex
}

type wasmRequest struct {
	Expression string `json:"expression"`
	Inputs     Inputs `json:"inputs,omitempty"`
}

type wasmResponse struct {
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// NewWASMEvaluator loads and instantiates the evaluator module at path.
func NewWASMEvaluator(ctx context.Context, path string, logger *zap.Logger) (*WASMEvaluator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	binary, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read evaluator module: %w", err)
	}

	runtime := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, runtime)

	module, err := runtime.Instantiate(ctx, binary)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("instantiate evaluator module: %w", err)
	}

	for _, name := range []string{exportAlloc, exportFree, exportEval} {
		if module.ExportedFunction(name) == nil {
			_ = runtime.Close(ctx)
			return nil, fmt.Errorf("evaluator module does not export %q", name)
		}
	}

	logger.Info("evaluator module loaded",
		zap.String("path", path),
		zap.Int("bytes", len(binary)))

	return &WASMEvaluator{runtime: runtime, module: module, logger: logger}, nil
}

// Evaluate implements Evaluator by round-tripping a JSON request through
// the module's linear memory.
func (e *WASMEvaluator) Evaluate(ctx context.Context, expression string, inputs Inputs) (string, error) {
	payload, err := json.Marshal(wasmRequest{Expression: expression, Inputs: inputs})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	alloc := e.module.ExportedFunction(exportAlloc)
	free := e.module.ExportedFunction(exportFree)
	evalFn := e.module.ExportedFunction(exportEval)

	allocRes, err := alloc.Call(ctx, uint64(len(payload)))
	if err != nil {
		return "", fmt.Errorf("allocate request buffer: %w", err)
	}
	reqPtr := allocRes[0]
	defer free.Call(ctx, reqPtr, uint64(len(payload))) //nolint:errcheck

	if !e.module.Memory().Write(uint32(reqPtr), payload) {
		return "", errors.New("request does not fit evaluator memory")
	}

	evalRes, err := evalFn.Call(ctx, reqPtr, uint64(len(payload)))
	if err != nil {
		return "", fmt.Errorf("evaluate: %w", err)
	}

	// Result is ptr<<32 | len into linear memory.
	packed := evalRes[0]
	respPtr := uint32(packed >> 32)
	respLen := uint32(packed)

	raw, ok := e.module.Memory().Read(respPtr, respLen)
	if !ok {
		return "", errors.New("response outside evaluator memory")
	}
	// Copy before freeing; Read aliases linear memory.
	data := make([]byte, len(raw))
	copy(data, raw)
	free.Call(ctx, uint64(respPtr), uint64(respLen)) //nolint:errcheck

	var resp wasmResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.Error != "" {
		return "", errors.New(resp.Error)
	}
	return resp.Value, nil
}

// Close releases the runtime and module.
func (e *WASMEvaluator) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runtime.Close(ctx)
}
