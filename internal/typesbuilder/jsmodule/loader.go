package jsmodule

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"
)

//go:embed describe.js
var describeSource string

// DefaultMaxDepth bounds how deep nested objects are described.
const DefaultMaxDepth = 3

// ErrUnsupportedRequire is thrown into the module when it requires anything
// other than a relative file inside the compiled output.
var ErrUnsupportedRequire = errors.New("unsupported require")

// Loader evaluates CommonJS modules with goja. Every Load uses a fresh
// runtime, so a Loader is safe for concurrent use.
type Loader struct {
	// MaxDepth bounds nested object description (DefaultMaxDepth when zero).
	MaxDepth int

	// Logger receives console output of the evaluated module at debug level.
	Logger *slog.Logger
}

// NewLoader returns a loader with default limits.
func NewLoader() *Loader {
	return &Loader{MaxDepth: DefaultMaxDepth}
}

// Load evaluates the module at path and returns the shape of module.exports.
// Evaluation executes the module's top-level code.
func (l *Loader) Load(ctx context.Context, path string) (*Shape, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve module path: %w", err)
	}

	vm := goja.New()
	env := &moduleEnv{vm: vm, cache: map[string]*goja.Object{}, logger: l.logger()}
	env.installGlobals()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	exports, err := env.require(abs)
	if err != nil {
		return nil, l.wrapRunError(ctx, abs, err)
	}

	describe, err := vm.RunString(describeSource)
	if err != nil {
		return nil, fmt.Errorf("compile export introspection: %w", err)
	}
	fn, ok := goja.AssertFunction(describe)
	if !ok {
		return nil, errors.New("export introspection is not a function")
	}
	out, err := fn(goja.Undefined(), exports, vm.ToValue(l.maxDepth()))
	if err != nil {
		return nil, l.wrapRunError(ctx, abs, err)
	}

	var shape Shape
	if err := json.Unmarshal([]byte(out.String()), &shape); err != nil {
		return nil, fmt.Errorf("decode export shape of %s: %w", abs, err)
	}
	shape.normalize()
	return &shape, nil
}

func (l *Loader) maxDepth() int {
	if l.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return l.MaxDepth
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l *Loader) wrapRunError(ctx context.Context, path string, err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) && ctx.Err() != nil {
		return fmt.Errorf("evaluate %s: %w", path, ctx.Err())
	}
	return fmt.Errorf("evaluate %s: %w", path, err)
}

// moduleEnv is the CommonJS environment of one Load call.
type moduleEnv struct {
	vm     *goja.Runtime
	cache  map[string]*goja.Object
	logger *slog.Logger
}

func (e *moduleEnv) installGlobals() {
	console := e.vm.NewObject()
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		level := name
		_ = console.Set(name, func(call goja.FunctionCall) goja.Value {
			parts := make([]string, 0, len(call.Arguments))
			for _, a := range call.Arguments {
				parts = append(parts, a.String())
			}
			e.logger.Debug("module console output", "level", level, "message", strings.Join(parts, " "))
			return goja.Undefined()
		})
	}
	_ = e.vm.Set("console", console)

	process := e.vm.NewObject()
	_ = process.Set("env", e.vm.NewObject())
	_ = process.Set("platform", "typesbuilder")
	_ = e.vm.Set("process", process)
}

// require loads the module file at abs (already resolved) and returns its
// module.exports value. Modules are cached before evaluation so cycles see
// partially initialised exports, as in Node.
func (e *moduleEnv) require(abs string) (goja.Value, error) {
	if mod, ok := e.cache[abs]; ok {
		return mod.Get("exports"), nil
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	module := e.vm.NewObject()
	exports := e.vm.NewObject()
	_ = module.Set("exports", exports)
	_ = module.Set("id", abs)
	e.cache[abs] = module

	if strings.EqualFold(filepath.Ext(abs), ".json") {
		parsed, err := e.parseJSON(string(src))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", abs, err)
		}
		_ = module.Set("exports", parsed)
		return parsed, nil
	}

	wrapped := "(function (exports, require, module, __filename, __dirname) {" + string(src) + "\n})"
	prg, err := goja.Compile(abs, wrapped, false)
	if err != nil {
		return nil, err
	}
	wrapper, err := e.vm.RunProgram(prg)
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(wrapper)
	if !ok {
		return nil, fmt.Errorf("module wrapper of %s is not callable", abs)
	}

	dir := filepath.Dir(abs)
	_, err = fn(exports, exports, e.vm.ToValue(e.requireFrom(dir)), module, e.vm.ToValue(abs), e.vm.ToValue(dir))
	if err != nil {
		return nil, err
	}
	return module.Get("exports"), nil
}

// requireFrom returns the require function seen by modules in dir.
func (e *moduleEnv) requireFrom(dir string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		spec := call.Argument(0).String()
		target, err := resolveRelative(dir, spec)
		if err != nil {
			throw(e.vm, err)
		}
		v, err := e.require(target)
		if err != nil {
			throw(e.vm, err)
		}
		return v
	}
}

func (e *moduleEnv) parseJSON(src string) (goja.Value, error) {
	parse, ok := goja.AssertFunction(e.vm.Get("JSON").ToObject(e.vm).Get("parse"))
	if !ok {
		return nil, errors.New("JSON.parse unavailable")
	}
	return parse(goja.Undefined(), e.vm.ToValue(src))
}

// resolveRelative implements the file part of Node's resolution for
// relative specifiers: exact file, then .js and .json, then directory index.
func resolveRelative(dir, spec string) (string, error) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") && !filepath.IsAbs(spec) {
		return "", fmt.Errorf("%w %q: only relative modules inside the compiled output can be loaded", ErrUnsupportedRequire, spec)
	}
	base := spec
	if !filepath.IsAbs(base) {
		base = filepath.Join(dir, filepath.FromSlash(spec))
	}
	candidates := []string{base, base + ".js", base + ".json", filepath.Join(base, "index.js"), filepath.Join(base, "index.json")}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("cannot find module %q from %s", spec, dir)
}

// throw raises err inside the JS runtime, avoiding re-wrapping JS exceptions.
func throw(vm *goja.Runtime, err error) {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		panic(interrupted)
	}
	var exc *goja.Exception
	if errors.As(err, &exc) {
		panic(exc)
	}
	panic(vm.NewGoError(err))
}
