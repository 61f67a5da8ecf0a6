// Package fingerprint captures the runtime and detector versions a snapshot
// was produced with.
package fingerprint

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"github.com/charsnap/charsnap/internal/domain"
	"github.com/charsnap/charsnap/internal/logging"
)

// RevisionReader resolves the VCS revision of the tree containing a path.
type RevisionReader interface {
	CommitHash(path string) (string, error)
}

// Option customises an EnvFingerprinter.
type Option func(*EnvFingerprinter)

// WithBuildInfo replaces runtime/debug.ReadBuildInfo.
func WithBuildInfo(fn func() (*debug.BuildInfo, bool)) Option {
	return func(f *EnvFingerprinter) { f.readBuildInfo = fn }
}

// WithRuntimeVersion replaces runtime.Version.
func WithRuntimeVersion(fn func() string) Option {
	return func(f *EnvFingerprinter) { f.runtimeVersion = fn }
}

// WithRevisions attaches the corpus revision to the metadata when available.
func WithRevisions(r RevisionReader) Option {
	return func(f *EnvFingerprinter) { f.revisions = r }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(f *EnvFingerprinter) { f.log = log }
}

// EnvFingerprinter implements domain.Fingerprinter from the process build info.
type EnvFingerprinter struct {
	detectorModule string
	readBuildInfo  func() (*debug.BuildInfo, bool)
	runtimeVersion func() string
	revisions      RevisionReader
	log            *zap.SugaredLogger
}

// New creates a fingerprinter that reports the version of detectorModule.
func New(detectorModule string, opts ...Option) *EnvFingerprinter {
	f := &EnvFingerprinter{
		detectorModule: detectorModule,
		readBuildInfo:  debug.ReadBuildInfo,
		runtimeVersion: runtime.Version,
		log:            logging.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fingerprint reads the version identifiers. It does not look at corpus
// content; corpusRoot is only used to find the enclosing repository.
func (f *EnvFingerprinter) Fingerprint(corpusRoot string) (domain.Metadata, error) {
	rv, err := RuntimeSemver(f.runtimeVersion())
	if err != nil {
		return domain.Metadata{}, domain.EnvironmentUnavailable(fmt.Errorf("runtime version: %w", err))
	}

	info, ok := f.readBuildInfo()
	if !ok || info == nil {
		return domain.Metadata{}, domain.EnvironmentUnavailable(errors.New("build info not available"))
	}

	det, err := detectorBuild(info, f.detectorModule)
	if err != nil {
		return domain.Metadata{}, domain.EnvironmentUnavailable(err)
	}
	dv, err := ModuleSemver(det.version)
	if err != nil {
		return domain.Metadata{}, domain.EnvironmentUnavailable(fmt.Errorf("detector version: %w", err))
	}

	meta := domain.Metadata{
		RuntimeVersion:  rv,
		DetectorVersion: dv,
		DetectorModule:  det.module,
		HarnessBuild:    harnessBuild(info),
		DetectorLocal:   det.local,
	}
	if det.local {
		f.log.Warnw("detector replaced by a local directory; results will not be cached", "module", det.module)
	}

	if f.revisions != nil {
		hash, err := f.revisions.CommitHash(corpusRoot)
		if err != nil {
			f.log.Debugw("corpus revision unavailable", "root", corpusRoot, "error", err)
		} else {
			meta.CorpusRevision = hash
		}
	}

	return meta, nil
}

type linkedModule struct {
	version string
	module  string
	local   bool
}

// detectorBuild locates path in the build info. A replaced module is recorded
// as "path => replacement[@version]"; a directory replacement has no version
// of its own, so the upstream one is reported and the build is marked local.
func detectorBuild(info *debug.BuildInfo, path string) (linkedModule, error) {
	if info.Main.Path == path && info.Main.Version != "" {
		return linkedModule{version: info.Main.Version, module: path + "@" + info.Main.Version}, nil
	}
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}
		switch {
		case dep.Replace == nil:
			return linkedModule{version: dep.Version, module: path + "@" + dep.Version}, nil
		case dep.Replace.Version != "":
			return linkedModule{
				version: dep.Replace.Version,
				module:  path + " => " + dep.Replace.Path + "@" + dep.Replace.Version,
			}, nil
		default:
			return linkedModule{version: dep.Version, module: path + " => " + dep.Replace.Path, local: true}, nil
		}
	}
	return linkedModule{}, fmt.Errorf("module %s not found in build info", path)
}

// harnessBuild identifies the running binary: its module version when it was
// installed from a release, otherwise the clean VCS revision it was built
// from. Development and modified builds yield "".
func harnessBuild(info *debug.BuildInfo) string {
	if v := info.Main.Version; v != "" && v != "(devel)" && !strings.HasSuffix(v, "+dirty") {
		return v
	}
	var revision, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if modified == "true" {
		return ""
	}
	return revision
}

// RuntimeSemver turns a Go runtime version ("go1.24.10", "go1.25rc1",
// "devel go1.26-abcdef ...") into major.minor.patch.
func RuntimeSemver(v string) (string, error) {
	s := strings.TrimPrefix(v, "devel ")
	if !strings.HasPrefix(s, "go") {
		return "", fmt.Errorf("unrecognised runtime version %q", v)
	}
	return core(strings.TrimPrefix(s, "go"), 2, v)
}

// ModuleSemver turns a module version ("v1.2.3", pseudo-versions,
// "+incompatible") into its major.minor.patch core.
func ModuleSemver(v string) (string, error) {
	if !strings.HasPrefix(v, "v") {
		return "", fmt.Errorf("unrecognised module version %q", v)
	}
	return core(strings.TrimPrefix(v, "v"), 3, v)
}

// core keeps the leading dotted numeric run of s and pads it to three parts.
func core(s string, minParts int, orig string) (string, error) {
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	parts := strings.Split(strings.TrimSuffix(s[:end], "."), ".")
	if len(parts) < minParts || len(parts) > 3 {
		return "", fmt.Errorf("unrecognised version %q", orig)
	}
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("unrecognised version %q", orig)
		}
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(parts, "."), nil
}
