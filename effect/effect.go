package effect

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/imgedit/filter"
	"github.com/gogpu/imgedit/internal/logging"
)

// ErrNoFilter is returned by NewFilter for entries that leave the image
// unchanged, such as "None".
var ErrNoFilter = errors.New("effect: entry has no filter")

// CubeDimension is the lattice size of every LUT effect.
const CubeDimension = 64

// Effect is one immutable catalog entry.
type Effect struct {
	identifier  string
	filterName  string
	lutResource string
	displayName string
	options     filter.Options

	lutOnce sync.Once
	lutData []byte
	lutErr  error
}

// NewEffect returns a procedural entry. An empty filterName makes an
// entry with no filter.
func NewEffect(identifier, filterName, displayName string, options filter.Options) *Effect {
	return &Effect{
		identifier:  identifier,
		filterName:  filterName,
		displayName: displayName,
		options:     options.Clone(),
	}
}

// NewLUTEffect returns an entry that applies the color cube stored in
// resource. The cube dimension and working color space are filled in.
func NewLUTEffect(identifier, resource, displayName string) *Effect {
	return &Effect{
		identifier:  identifier,
		filterName:  filter.NameColorCube,
		lutResource: resource,
		displayName: displayName,
		options: filter.Options{
			filter.OptionCubeDimension: CubeDimension,
			filter.OptionColorSpace:    filter.ColorSpaceSRGB,
		},
	}
}

// Identifier returns the unique catalog key.
func (e *Effect) Identifier() string { return e.identifier }

// FilterName returns the filter registry name, or "" for no filter.
func (e *Effect) FilterName() string { return e.filterName }

// LUTResource returns the LUT resource name, or "" for procedural entries.
func (e *Effect) LUTResource() string { return e.lutResource }

// DisplayName returns the user-facing name.
func (e *Effect) DisplayName() string { return e.displayName }

// Options returns a copy of the filter options.
func (e *Effect) Options() filter.Options { return e.options.Clone() }

// HasFilter reports whether the entry changes the image.
func (e *Effect) HasFilter() bool { return e.filterName != "" }

func (e *Effect) String() string {
	return fmt.Sprintf("Effect(%s)", e.identifier)
}

// NewFilter creates a new filter for the entry through factory (nil means
// filter.Default). Every call returns a distinct filter; only the decoded
// LUT is shared between calls.
func (e *Effect) NewFilter(factory filter.Factory) (filter.Filter, error) {
	if !e.HasFilter() {
		return nil, ErrNoFilter
	}
	opts := e.options.Clone()
	if e.lutResource != "" {
		data, err := e.cubeData()
		if err != nil {
			return nil, err
		}
		opts[filter.OptionCubeData] = data
	}
	if factory == nil {
		factory = filter.Default
	}
	return factory.New(e.filterName, opts)
}

// cubeData decodes the entry's LUT on first use. The outcome, success or
// failure, is kept for the life of the process.
func (e *Effect) cubeData() ([]byte, error) {
	e.lutOnce.Do(func() {
		img, err := currentSource().OpenLUT(e.lutResource)
		if err != nil {
			e.lutErr = fmt.Errorf("effect %s: %w", e.identifier, err)
		} else if e.lutData, err = DecodeLUT(img); err != nil {
			e.lutErr = fmt.Errorf("effect %s: %w", e.identifier, err)
		}
		if e.lutErr != nil {
			logging.Logger().Warn("effect: LUT unavailable", "effect", e.identifier, "err", e.lutErr)
			return
		}
		logging.Logger().Debug("effect: LUT decoded", "effect", e.identifier, "bytes", len(e.lutData))
	})
	return e.lutData, e.lutErr
}
