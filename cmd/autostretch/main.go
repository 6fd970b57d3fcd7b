package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/vearutop/autostretch"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "stretch":
		if err := runStretch(os.Args[2:]); err != nil {
			fail(err)
		}
	case "params":
		if err := runParams(os.Args[2:]); err != nil {
			fail(err)
		}
	case "stats":
		if err := runStats(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: autostretch <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  stretch -in frame.tif -out view.png [-sampling 1] [-preset normal] [-unbalanced] [-ref green]")
	fmt.Fprintln(os.Stderr, "          [-params p.json] [-params-out p.json] [-fit 800x600] [-interp lanczos3]")
	fmt.Fprintln(os.Stderr, "  params  -in frame.tif [-preset normal] [-unbalanced] [-ref green]")
	fmt.Fprintln(os.Stderr, "  stats   -in frame.tif")
	fmt.Fprintln(os.Stderr, "Headerless frames: -in frame.raw -w 1920 -h 1080 -format mono16 [-big-endian]")
}

// input holds the flags selecting a source frame.
type input struct {
	path      *string
	width     *int
	height    *int
	format    *string
	bigEndian *bool
	preset    *string
}

func inputFlags(fs *flag.FlagSet) input {
	return input{
		path:      fs.String("in", "", "input frame (PNG, TIFF or headerless raw)"),
		width:     fs.Int("w", 0, "width of a headerless raw frame"),
		height:    fs.Int("h", 0, "height of a headerless raw frame"),
		format:    fs.String("format", "", "pixel format of a headerless raw frame: mono8, mono16, rgb24, rgb48"),
		bigEndian: fs.Bool("big-endian", false, "16-bit samples of a headerless raw frame are big-endian"),
		preset:    fs.String("preset", "normal", "stretch strength: none, slight, moderate, normal, hard"),
	}
}

func parseFormat(s string) (autostretch.PixelFormat, error) {
	for _, f := range []autostretch.PixelFormat{
		autostretch.FormatMono8, autostretch.FormatMono16,
		autostretch.FormatRGB24, autostretch.FormatRGB48,
	} {
		if f.String() == strings.ToLower(s) {
			return f, nil
		}
	}
	return autostretch.FormatUnspecified, fmt.Errorf("%w: %q", autostretch.ErrUnsupportedFormat, s)
}

func (in input) load() (*autostretch.RawImage, *autostretch.Stretcher, error) {
	if *in.path == "" {
		return nil, nil, errors.New("missing required arguments")
	}
	preset, err := autostretch.ParsePreset(*in.preset)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(filepath.Clean(*in.path))
	if err != nil {
		return nil, nil, err
	}

	var raw *autostretch.RawImage
	if *in.format != "" {
		format, err := parseFormat(*in.format)
		if err != nil {
			return nil, nil, err
		}
		raw = &autostretch.RawImage{Width: *in.width, Height: *in.height, Format: format, Pix: data}
	} else {
		raw, err = autostretch.DecodeRaw(data)
		if err != nil {
			return nil, nil, err
		}
	}

	s, err := raw.Stretcher(func(o *autostretch.Options) {
		o.Preset = preset
		if *in.bigEndian && *in.format != "" {
			o.ByteOrder = binary.BigEndian
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return raw, s, nil
}

func computeParams(s *autostretch.Stretcher, raw *autostretch.RawImage, unbalanced bool, ref string) (autostretch.ImageStretchParams, error) {
	if !unbalanced {
		return s.ComputeParams(raw.Pix)
	}
	ch, err := autostretch.ParseChannel(ref)
	if err != nil {
		return autostretch.ImageStretchParams{}, err
	}
	return s.ComputeParamsUnbalanced(raw.Pix, ch)
}

func runStretch(args []string) error {
	fs := flag.NewFlagSet("stretch", flag.ContinueOnError)
	in := inputFlags(fs)
	outPath := fs.String("out", "", "output raster (.png or .tif)")
	sampling := fs.Int("sampling", 1, "render every n-th pixel of every n-th row")
	unbalanced := fs.Bool("unbalanced", false, "share the reference channel curve across RGB channels")
	ref := fs.String("ref", autostretch.DefaultReferenceChannel.String(), "reference channel for -unbalanced")
	paramsIn := fs.String("params", "", "use stretch params from json instead of computing them")
	paramsOut := fs.String("params-out", "", "write stretch params json")
	fit := fs.String("fit", "", "scale the result down to fit WxH")
	interpName := fs.String("interp", "lanczos3", "interpolation for -fit")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("missing required arguments")
	}
	if *sampling < 1 {
		return fmt.Errorf("%w: %d", autostretch.ErrInvalidSampling, *sampling)
	}

	raw, s, err := in.load()
	if err != nil {
		return err
	}

	var params autostretch.ImageStretchParams
	if *paramsIn != "" {
		data, err := os.ReadFile(filepath.Clean(*paramsIn))
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("read params: %w", err)
		}
	} else {
		params, err = computeParams(s, raw, *unbalanced, *ref)
		if err != nil {
			return err
		}
	}

	view := autostretch.NewRaster(raw.Width, raw.Height, *sampling)
	if err := s.Stretch(raw.Pix, view, *sampling, func(o *autostretch.StretchOptions) {
		o.Params = &params
	}); err != nil {
		return err
	}

	var out image.Image = view
	if *fit != "" {
		w, h, err := autostretch.ParseSize(*fit)
		if err != nil {
			return err
		}
		interp, err := autostretch.ParseInterpolation(*interpName)
		if err != nil {
			return err
		}
		out = autostretch.FitRaster(view, w, h, interp)
	}

	var buf bytes.Buffer
	if err := autostretch.EncodeRaster(&buf, out, autostretch.FormatFromPath(*outPath)); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(*outPath), buf.Bytes(), 0o644); err != nil {
		return err
	}

	if *paramsOut != "" {
		payload, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Clean(*paramsOut), payload, 0o644); err != nil {
			return fmt.Errorf("write params: %w", err)
		}
	}
	return nil
}

func runParams(args []string) error {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	in := inputFlags(fs)
	unbalanced := fs.Bool("unbalanced", false, "share the reference channel curve across RGB channels")
	ref := fs.String("ref", autostretch.DefaultReferenceChannel.String(), "reference channel for -unbalanced")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, s, err := in.load()
	if err != nil {
		return err
	}
	params, err := computeParams(s, raw, *unbalanced, *ref)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	in := inputFlags(fs)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, s, err := in.load()
	if err != nil {
		return err
	}
	summary, err := s.Summarize(raw.Pix)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%dx%d %s, %d samples per channel\n", raw.Width, raw.Height, raw.Format, summary[0].Samples)
	for _, c := range summary {
		name := c.Channel.String()
		if raw.Format.Channels() == 1 {
			name = "grey"
		}
		fmt.Fprintf(os.Stdout, "%-6s median %8.1f  mad %8.1f  madn %.5f  mean %10.2f  stddev %10.2f  min %6.0f  max %6.0f\n",
			name, c.Median, c.MAD, c.MADN, c.Mean, c.StdDev, c.Min, c.Max)
	}
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
