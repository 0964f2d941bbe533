package effect

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/imgedit/filter"
)

// withSource swaps the LUT source for the duration of a test.
func withSource(t *testing.T, s Source) {
	t.Helper()
	SetSource(s)
	t.Cleanup(func() { SetSource(nil) })
}

func TestCatalogShape(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	assert.Equal(t, Len(), len(all))
	assert.GreaterOrEqual(t, len(all), 55)

	assert.Equal(t, NoneIdentifier, all[0].Identifier())
	assert.False(t, all[0].HasFilter())

	seen := map[string]bool{}
	for _, e := range all {
		assert.False(t, seen[e.Identifier()], "duplicate identifier %s", e.Identifier())
		seen[e.Identifier()] = true
		assert.NotEmpty(t, e.DisplayName())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0] = nil
	assert.NotNil(t, All()[0])
}

func TestWithIdentifier(t *testing.T) {
	none, ok := WithIdentifier("None")
	require.True(t, ok)
	assert.Empty(t, none.FilterName())
	_, err := none.NewFilter(nil)
	assert.ErrorIs(t, err, ErrNoFilter)

	_, ok = WithIdentifier("DoesNotExist")
	assert.False(t, ok)

	k1, ok := WithIdentifier("K1")
	require.True(t, ok)
	assert.Equal(t, filter.NameColorCube, k1.FilterName())
	assert.Equal(t, 1, Index("K1"))
	assert.Equal(t, -1, Index("DoesNotExist"))
}

func TestLUTEntryOptions(t *testing.T) {
	for _, e := range All() {
		if e.LUTResource() == "" {
			continue
		}
		opts := e.Options()
		assert.Equal(t, CubeDimension, opts[filter.OptionCubeDimension], e.Identifier())
		assert.Equal(t, filter.ColorSpaceSRGB, opts[filter.OptionColorSpace], e.Identifier())
		_, ok := looks[e.LUTResource()]
		assert.True(t, ok, "no built-in look for %s", e.LUTResource())
	}
}

func TestOptionsReturnsCopy(t *testing.T) {
	e := NewLUTEffect("x", "x", "X")
	opts := e.Options()
	opts[filter.OptionCubeDimension] = 8
	assert.Equal(t, CubeDimension, e.Options()[filter.OptionCubeDimension])
}

func TestProceduralEntriesMaterialize(t *testing.T) {
	for _, e := range All() {
		if !e.HasFilter() || e.LUTResource() != "" {
			continue
		}
		f, err := e.NewFilter(filter.Default)
		require.NoError(t, err, e.Identifier())
		assert.Equal(t, e.FilterName(), f.Name())
	}
}

func TestNewFilterReturnsFreshInstancesAndDecodesOnce(t *testing.T) {
	var mu sync.Mutex
	opens := 0
	withSource(t, SourceFunc(func(resource string) (image.Image, error) {
		mu.Lock()
		opens++
		mu.Unlock()
		return IdentityLUT(), nil
	}))

	e := NewLUTEffect("test", "identity", "Test")
	f1, err := e.NewFilter(nil)
	require.NoError(t, err)
	f2, err := e.NewFilter(nil)
	require.NoError(t, err)

	assert.NotSame(t, f1, f2)
	assert.Equal(t, 1, opens)
}

func TestMissingLUTFailsWithoutPanicking(t *testing.T) {
	withSource(t, FSSource(fstest.MapFS{}))
	e := NewLUTEffect("missing", "missing", "Missing")
	_, err := e.NewFilter(nil)
	assert.ErrorIs(t, err, ErrLUTNotFound)
	_, err = e.NewFilter(nil)
	assert.ErrorIs(t, err, ErrLUTNotFound, "failure is remembered")
}

func TestFactoryFailureIsReturned(t *testing.T) {
	e := NewEffect("broken", "NoSuchFilter", "Broken", nil)
	_, err := e.NewFilter(nil)
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)
}

func TestCustomFactoryIsUsed(t *testing.T) {
	var gotName string
	var gotOpts filter.Options
	factory := filter.FactoryFunc(func(name string, opts filter.Options) (filter.Filter, error) {
		gotName, gotOpts = name, opts
		return filter.New(name, opts)
	})
	e := NewEffect("mono", filter.NamePhotoEffectMono, "Mono", filter.Options{"extra": 1})
	_, err := e.NewFilter(factory)
	require.NoError(t, err)
	assert.Equal(t, filter.NamePhotoEffectMono, gotName)
	assert.Equal(t, 1, gotOpts["extra"])
}

func TestBuiltinMonochromeLook(t *testing.T) {
	e, ok := WithIdentifier("BW")
	require.True(t, ok)
	f, err := e.NewFilter(nil)
	require.NoError(t, err)

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []byte{220, 40, 90, 255})
	}
	f.SetInput(src)
	c := f.Output().RGBAAt(2, 2)
	assert.InDelta(t, int(c.R), int(c.G), 2)
	assert.InDelta(t, int(c.G), int(c.B), 2)
}

func TestDecodeLUTIdentity(t *testing.T) {
	data, err := DecodeLUT(IdentityLUT())
	require.NoError(t, err)
	require.Len(t, data, CubeDimension*CubeDimension*CubeDimension*4)

	at := func(r, g, b int) []byte {
		i := ((b*CubeDimension+g)*CubeDimension + r) * 4
		return data[i : i+4]
	}
	assert.Equal(t, []byte{0, 0, 0, 255}, at(0, 0, 0))
	assert.Equal(t, []byte{255, 255, 255, 255}, at(63, 63, 63))
	assert.Equal(t, []byte{255, 0, 0, 255}, at(63, 0, 0))
	assert.Equal(t, []byte{0, 0, 255, 255}, at(0, 0, 63))
	assert.Equal(t, []byte{unit8(10.0 / 63), unit8(20.0 / 63), unit8(30.0 / 63), 255}, at(10, 20, 30))
}

func TestDecodeLUTRejectsWrongSize(t *testing.T) {
	_, err := DecodeLUT(image.NewRGBA(image.Rect(0, 0, 64, 64)))
	assert.ErrorIs(t, err, ErrInvalidLUT)
}

func TestDecodeLUTOffsetBounds(t *testing.T) {
	lut := IdentityLUT()
	shifted := image.NewNRGBA(image.Rect(100, 100, 100+lutSize, 100+lutSize))
	copy(shifted.Pix, lut.Pix)
	a, err := DecodeLUT(lut)
	require.NoError(t, err)
	b, err := DecodeLUT(shifted)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFSSource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, IdentityLUT()))

	fsys := fstest.MapFS{
		"identity.png": {Data: buf.Bytes()},
		"broken.png":   {Data: []byte("not an image")},
	}
	src := FSSource(fsys)

	img, err := src.OpenLUT("identity")
	require.NoError(t, err)
	assert.Equal(t, lutSize, img.Bounds().Dx())

	_, err = src.OpenLUT("identity.png")
	require.NoError(t, err)

	_, err = src.OpenLUT("absent")
	assert.ErrorIs(t, err, ErrLUTNotFound)

	_, err = src.OpenLUT("broken")
	assert.ErrorIs(t, err, ErrInvalidLUT)
}

func TestChainSources(t *testing.T) {
	custom := SourceFunc(func(resource string) (image.Image, error) {
		if resource == "Mine" {
			return IdentityLUT(), nil
		}
		return nil, ErrLUTNotFound
	})
	chain := ChainSources(custom, BuiltinSource())

	_, err := chain.OpenLUT("Mine")
	assert.NoError(t, err)
	_, err = chain.OpenLUT("K1")
	assert.NoError(t, err)
	_, err = chain.OpenLUT("Nothing")
	assert.ErrorIs(t, err, ErrLUTNotFound)

	failing := SourceFunc(func(string) (image.Image, error) { return nil, errors.New("disk on fire") })
	_, err = ChainSources(failing, BuiltinSource()).OpenLUT("K1")
	assert.EqualError(t, err, "disk on fire")
}

func TestLookApplyNeutral(t *testing.T) {
	neutral := look{saturation: 1, contrast: 1, gamma: 1}
	r, g, b := neutral.apply(0.2, 0.5, 0.9)
	assert.InDelta(t, 0.2, r, 1e-9)
	assert.InDelta(t, 0.5, g, 1e-9)
	assert.InDelta(t, 0.9, b, 1e-9)
}

func TestConcurrentLookups(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, e := range All() {
				got, ok := WithIdentifier(e.Identifier())
				if !ok || got != e {
					t.Errorf("lookup of %s failed", e.Identifier())
				}
			}
		}()
	}
	wg.Wait()
}

