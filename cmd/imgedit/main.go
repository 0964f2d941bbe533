// Command imgedit applies edit recipes and photo effects to image files.
//
// Usage:
//
//	imgedit render -in photo.jpg -out edited.png [-recipe edit.toml] [flags]
//	imgedit thumbs -in photo.jpg -outdir thumbs [-size 96]
//	imgedit effects
//	imgedit size -in photo.jpg [-recipe edit.toml] [flags]
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/gogpu/imgedit"
	"github.com/gogpu/imgedit/effect"
	"github.com/gogpu/imgedit/thumbnail"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("imgedit: ")

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "render":
		err = runRender(args)
	case "thumbs":
		err = runThumbs(args)
	case "effects":
		err = runEffects(args, os.Stdout)
	case "size":
		err = runSize(args, os.Stdout)
	case "help", "-h", "-help", "--help":
		usage(os.Stdout)
	default:
		usage(os.Stderr)
		log.Fatalf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: imgedit <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  render   apply an edit to an image and save the result")
	fmt.Fprintln(w, "  thumbs   write one thumbnail per catalog effect")
	fmt.Fprintln(w, "  effects  list the effect catalog")
	fmt.Fprintln(w, "  size     print the output size of an edit without rendering")
}

// editFlags are the flags shared by render and size.
type editFlags struct {
	in          string
	recipe      string
	crop        string
	straighten  float64
	orientation string
	effect      string
	intensity   float64
	brightness  float64
	contrast    float64
	saturation  float64
	auto        bool
	noExif      bool
	luts        string
	verbose     bool
}

func (f *editFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.in, "in", "", "input image (required)")
	fs.StringVar(&f.recipe, "recipe", "", "TOML edit recipe applied before the other flags")
	fs.StringVar(&f.crop, "crop", "", "normalized crop rectangle x,y,w,h")
	fs.Float64Var(&f.straighten, "straighten", 0, "straighten angle in radians")
	fs.StringVar(&f.orientation, "orientation", "", "extra orientation (e.g. Rotate90, FlipX)")
	fs.StringVar(&f.effect, "effect", "", "effect identifier (see imgedit effects)")
	fs.Float64Var(&f.intensity, "intensity", 1, "effect intensity 0..1")
	fs.Float64Var(&f.brightness, "brightness", 0, "brightness -1..1")
	fs.Float64Var(&f.contrast, "contrast", 1, "contrast multiplier")
	fs.Float64Var(&f.saturation, "saturation", 1, "saturation multiplier")
	fs.BoolVar(&f.auto, "auto", false, "enable auto enhancement")
	fs.BoolVar(&f.noExif, "noexif", false, "ignore the EXIF orientation of the input")
	fs.StringVar(&f.luts, "luts", "", "directory with LUT images overriding the built-in looks")
	fs.BoolVar(&f.verbose, "v", false, "debug logging to stderr")
}

// model builds the edit model from the recipe and the flags that were
// set explicitly.
func (f *editFlags) model(fs *flag.FlagSet, exif imgedit.Orientation) (imgedit.EditModel, error) {
	m := imgedit.NewEditModel()
	if f.recipe != "" {
		var err error
		if m, err = imgedit.LoadRecipe(f.recipe); err != nil {
			return m, err
		}
	}

	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "crop":
			m.NormalizedCropRect, err = parseRect(f.crop)
		case "straighten":
			m.StraightenAngle = f.straighten
		case "orientation":
			var o imgedit.Orientation
			if o, err = imgedit.ParseOrientation(f.orientation); err == nil {
				m.AppliedOrientation = imgedit.Compose(m.AppliedOrientation, o)
			}
		case "effect":
			m.EffectIdentifier = f.effect
		case "intensity":
			m.EffectIntensity = f.intensity
		case "brightness":
			m.Brightness = f.brightness
		case "contrast":
			m.Contrast = f.contrast
		case "saturation":
			m.Saturation = f.saturation
		case "auto":
			m.AutoEnhancementEnabled = f.auto
		}
	})
	if err != nil {
		return m, err
	}
	if !f.noExif {
		m.AppliedOrientation = imgedit.Compose(exif, m.AppliedOrientation)
	}
	return m, m.Validate()
}

// setup applies the flags with process-wide effect.
func (f *editFlags) setup() {
	if f.verbose {
		imgedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if f.luts != "" {
		effect.SetSource(effect.ChainSources(effect.FSSource(os.DirFS(f.luts)), effect.BuiltinSource()))
	}
}

// load decodes the input image and builds the renderer for it.
func (f *editFlags) load(fs *flag.FlagSet) (*imgedit.Renderer, error) {
	if f.in == "" {
		return nil, fmt.Errorf("%s: -in is required", fs.Name())
	}
	in, err := os.Open(f.in)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	img, exif, err := imgedit.DecodeImage(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.in, err)
	}
	m, err := f.model(fs, exif)
	if err != nil {
		return nil, err
	}

	r := imgedit.NewRenderer()
	r.SetBaseImage(img)
	r.SetEditModel(m)
	return r, nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var f editFlags
	f.register(fs)
	out := fs.String("out", "", "output image, format chosen by extension (required)")
	quality := fs.Int("quality", 90, "JPEG quality")
	_ = fs.Parse(args)

	if *out == "" {
		return fmt.Errorf("render: -out is required")
	}
	f.setup()
	r, err := f.load(fs)
	if err != nil {
		return err
	}
	defer r.Close()

	snap := r.Snapshot(nil)
	if snap == nil {
		return fmt.Errorf("render: the edit produced an empty image")
	}
	if err := imgio.Save(*out, snap, encoderFor(*out, *quality)); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d)", *out, snap.Rect.Dx(), snap.Rect.Dy())
	return nil
}

func runSize(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("size", flag.ExitOnError)
	var f editFlags
	f.register(fs)
	_ = fs.Parse(args)

	f.setup()
	r, err := f.load(fs)
	if err != nil {
		return err
	}
	defer r.Close()

	s := r.OutputImageSize()
	fmt.Fprintf(w, "%gx%g\n", s.Width, s.Height)
	return nil
}

func runThumbs(args []string) error {
	fs := flag.NewFlagSet("thumbs", flag.ExitOnError)
	in := fs.String("in", "", "input image (required)")
	outdir := fs.String("outdir", "thumbs", "output directory")
	size := fs.Int("size", 96, "thumbnail edge length in pixels")
	luts := fs.String("luts", "", "directory with LUT images overriding the built-in looks")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	_ = fs.Parse(args)

	f := editFlags{luts: *luts, verbose: *verbose}
	f.setup()
	if *in == "" {
		return fmt.Errorf("thumbs: -in is required")
	}
	if *size <= 0 {
		return fmt.Errorf("thumbs: invalid size %d", *size)
	}
	img, err := imgio.Open(*in)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		return err
	}

	tr := thumbnail.NewRenderer(img)
	defer tr.Close()

	all := effect.All()
	errs := make([]error, len(all))
	tr.Generate(all, image.Pt(*size, *size), func(thumb *image.RGBA, i int) {
		if thumb == nil {
			errs[i] = fmt.Errorf("thumbs: %s: no output", all[i].Identifier())
			return
		}
		path := filepath.Join(*outdir, fmt.Sprintf("%02d-%s.png", i, all[i].Identifier()))
		errs[i] = imgio.Save(path, thumb, imgio.PNGEncoder())
	})
	tr.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	log.Printf("wrote %d thumbnails to %s", len(all), *outdir)
	return nil
}

func runEffects(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("effects", flag.ExitOnError)
	_ = fs.Parse(args)

	for i, e := range effect.All() {
		kind := e.FilterName()
		switch {
		case e.LUTResource() != "":
			kind += " " + e.LUTResource()
		case kind == "":
			kind = "-"
		}
		fmt.Fprintf(w, "%3d  %-14s %-14s %s\n", i, e.Identifier(), e.DisplayName(), kind)
	}
	return nil
}

func encoderFor(path string, quality int) imgio.Encoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(quality)
	case ".bmp":
		return imgio.BMPEncoder()
	default:
		return imgio.PNGEncoder()
	}
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (imgedit.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return imgedit.Rect{}, fmt.Errorf("crop %q: want x,y,w,h", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return imgedit.Rect{}, fmt.Errorf("crop %q: %w", s, err)
		}
		v[i] = f
	}
	return imgedit.R(v[0], v[1], v[2], v[3]), nil
}
