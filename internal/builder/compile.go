package builder

import (
	"errors"
	"fmt"

	"github.com/Norgate-AV/hlpack/internal/cache"
	"github.com/Norgate-AV/hlpack/internal/compiler"
	"github.com/Norgate-AV/hlpack/internal/modules"
	"github.com/Norgate-AV/hlpack/internal/utils"
)

// Result is a compiled bundle and the metadata of its build
type Result struct {
	// Output is the bundle text with the rewritten header
	Output string

	// Files are the compiler inputs, core file first
	Files []string

	// Name is the file name the bundle should be saved as
	Name string

	// Modules is the normalized set of requested modules
	Modules []string

	// CacheKey is empty when no cache was used
	CacheKey string

	// Cached is true when Output came from the cache
	Cached bool
}

// Compile builds a single minified bundle from the core file and modules.
//
// Module files that do not exist are skipped, and names that are not valid
// module names are left out of the bundle header. When store is not nil the
// bundle is looked up in and saved to it; cache failures are logged and
// never replace a compiler error.
func (b *Builder) Compile(names []string, store cache.Store) (*Result, error) {
	if err := b.VerifyPreconditions(); err != nil {
		return nil, err
	}

	set := modules.Normalize(names)

	res := &Result{
		Files:   b.IncludedFiles(set),
		Name:    b.OutputName(set),
		Modules: set,
	}

	for _, name := range set {
		if !modules.ValidName(name) || !utils.IsRegular(b.PathForModule(name)) {
			b.logger.Warn("module not found, skipping", "module", name)
		}
	}

	if store != nil {
		coreVersion, err := b.CurrentCoreVersion()
		if err != nil {
			return nil, err
		}

		res.CacheKey = b.CacheKey(set, coreVersion)

		value, ok, err := store.Get(res.CacheKey)
		switch {
		case err != nil:
			b.logger.Warn("cache lookup failed, compiling", "key", res.CacheKey, "err", err)
		case ok:
			b.logger.Debug("cache hit", "key", res.CacheKey)
			res.Output = value
			res.Cached = true
			return res, nil
		default:
			b.logger.Debug("cache miss", "key", res.CacheKey)
		}
	}

	out, err := b.compile(res.Files)
	if err != nil {
		return nil, err
	}

	res.Output, err = RewriteHeader(out, b.productName, modules.Valid(set))
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.Set(res.CacheKey, res.Output, b.ttl); err != nil {
			b.logger.Warn("failed to cache bundle", "key", res.CacheKey, "err", err)
		}
	}

	return res, nil
}

// compile runs the compiler over files and returns its standard output
func (b *Builder) compile(files []string) (string, error) {
	cmd := compiler.GetBuildCommand(b.compilerPath, files)
	b.logger.Debug("running compiler", "command", cmd.String())

	out, err := b.runner.Run(cmd.Path, cmd.Args)
	if err != nil {
		cerr := &CompileError{ExitCode: -1, Err: err}
		if out != nil {
			cerr.Stderr = out.Stderr
		}

		var exitErr *compiler.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.Code
		}

		return "", cerr
	}

	if out == nil {
		return "", &CompileError{ExitCode: -1, Err: fmt.Errorf("compiler produced no output")}
	}

	return out.Stdout, nil
}
