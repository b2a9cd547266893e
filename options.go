package gltfskema

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	eng "github.com/reoring/gltfskema/internal/engine"
	"github.com/reoring/gltfskema/source/gojson"
	stdjson "github.com/reoring/gltfskema/source/json"
	"github.com/reoring/gltfskema/source/jsonv2"
)

// TokenSource is the token stream a JSONDriver produces.
type TokenSource = eng.TokenSource

// JSONDriver scans JSON text into tokens. The default is go-json.
type JSONDriver interface {
	NewBytes(b []byte) TokenSource
	Name() string
}

// Severity expresses how duplicate JSON keys are treated.
type Severity int

const (
	Ignore Severity = iota // last value wins, silently
	Warn                   // last value wins, logged at warn level
	Reject                 // the load fails with duplicate_key
)

// Options configures a load. Zero values select the defaults.
type Options struct {
	Logger         *zap.Logger // nil disables diagnostics
	Driver         JSONDriver  // nil selects go-json
	MaxDepth       int         // 0 means unlimited
	MaxBytes       int64       // 0 means unlimited
	OnDuplicateKey Severity
}

// pick returns the last of opts, following the variadic convention where later
// options override earlier ones.
func pick(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Driver == nil {
		opt.Driver = gojson.Driver()
	}
	return opt
}

func (o Options) enforcement() eng.EnforceOptions {
	eo := eng.EnforceOptions{MaxDepth: o.MaxDepth, MaxBytes: o.MaxBytes}
	switch o.OnDuplicateKey {
	case Warn:
		eo.OnDuplicate = eng.DupWarn
		log := o.Logger
		eo.IssueSink = func(si eng.SimpleIssue) {
			log.Warn("duplicate key", zap.String("path", si.Path), zap.String("message", si.Message))
		}
	case Reject:
		eo.OnDuplicate = eng.DupError
	}
	return eo
}

var (
	driversMu sync.RWMutex
	drivers   = map[string]JSONDriver{
		gojson.Name:  gojson.Driver(),
		stdjson.Name: stdjson.Driver(),
		jsonv2.Name:  jsonv2.Driver(),
	}
)

// RegisterDriver makes d available to DriverByName and configuration files.
// Registering a name twice replaces the earlier driver.
func RegisterDriver(d JSONDriver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[d.Name()] = d
}

// DriverByName resolves a registered driver: "go-json", "encoding/json", or
// jsonv2.Name.
func DriverByName(name string) (JSONDriver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	if d, ok := drivers[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("gltfskema: unknown JSON driver %q (available: %v)", name, driverNames())
}

func driverNames() []string {
	names := make([]string, 0, len(drivers))
	for n := range drivers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
