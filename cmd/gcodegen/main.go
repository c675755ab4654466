package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	inkscape "github.com/galihrivanto/go-inkscape"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kpango/glg"

	gcgen "github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg"
	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/gcd"
	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/server"
	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/viewer"
)

type Flags struct {
	InputFilePath  string
	OutputFilePath string
	Scale          float64
	Replace        bool
	Loop           bool
	DX             float64
	DY             float64
	MaxX           string
	MaxY           string
	View           bool
	ServeAddr      string
	Inkscape       bool
	showGCode      bool
	preset         string
	makePreset     bool
}

func main() {
	var f Flags
	flag.StringVar(&f.InputFilePath, "i", "", "input file path (.svg or any text with X/Y moves)")
	flag.StringVar(&f.OutputFilePath, "o", "", "output file path")
	flag.Float64Var(&f.Scale, "s", 1.0, "scale factor for SVG input")
	flag.BoolVar(&f.Replace, "replace", true, "replace document on import (false appends)")
	flag.BoolVar(&f.Loop, "loop", false, "expand offset groups after import (use with -dx/-dy/-max-x/-max-y)")
	flag.Float64Var(&f.DX, "dx", 0, "X offset per group")
	flag.Float64Var(&f.DY, "dy", 0, "Y offset per group")
	flag.StringVar(&f.MaxX, "max-x", "", "stop looping when X would exceed this")
	flag.StringVar(&f.MaxY, "max-y", "", "stop looping when Y would exceed this")
	flag.BoolVar(&f.View, "v", false, "view the path")
	flag.StringVar(&f.ServeAddr, "serve", "", "serve the HTTP API on this address instead of the prompt")
	flag.BoolVar(&f.Inkscape, "inkscape", false, "pre-process SVG input through inkscape")
	flag.BoolVar(&f.showGCode, "show-gcode", false, "print resulting GCode even if -o is set")
	flag.StringVar(&f.preset, "preset", "", "JSON preset file path. This will override all other flags")
	flag.BoolVar(&f.makePreset, "make-preset", false, "auto-generate preset")
	flag.Parse()

	if f.makePreset {
		out, err := json.MarshalIndent(f, "", "\t")
		if err != nil {
			glg.Fatalf("Unable to generate preset: %v", err)
		}
		fmt.Println(string(out))
		glg.Infof("Preset generated")
		return
	}

	if f.preset != "" {
		data, err := os.ReadFile(f.preset)
		if err != nil {
			glg.Fatalf("Unable to read preset from %s: %v (use valid file or empty to not use presets)", f.preset, err)
		}

		if err := json.Unmarshal(data, &f); err != nil {
			glg.Fatalf("Unable to parse preset from %s: %v", f.preset, err)
		}
	}

	if f.ServeAddr != "" {
		glg.Infof("serving on %s", f.ServeAddr)
		if err := server.New().SetupRouter().Run(f.ServeAddr); err != nil {
			glg.Fatalf("Cannot serve: %v", err)
		}
		return
	}

	session := gcgen.NewSession()

	if f.InputFilePath != "" {
		loadInput(session, &f)
	}

	if f.Loop {
		maxX, err := parseLimit(f.MaxX)
		if err != nil {
			glg.Fatalf("Invalid -max-x: %v", err)
		}
		maxY, err := parseLimit(f.MaxY)
		if err != nil {
			glg.Fatalf("Invalid -max-y: %v", err)
		}

		groups, err := session.Loop(f.DX, f.DY, maxX, maxY)
		if err != nil {
			glg.Fatalf("Cannot loop: %v", err)
		}
		glg.Infof("appended %d offset groups", groups)
	}

	if f.InputFilePath == "" {
		runPrompt(session)
		if len(session.Records()) == 0 {
			return
		}
	}

	if f.OutputFilePath != "" {
		if err := saveProgram(session, f.OutputFilePath); err != nil {
			glg.Fatalf("Cannot write file %s: %v", f.OutputFilePath, err)
		}
	}

	if (f.OutputFilePath == "" && !f.View) || f.showGCode {
		lines, err := session.ExportLines()
		if err != nil {
			glg.Fatalf("Cannot export: %v", err)
		}
		fmt.Println(strings.Join(lines, "\n"))
	}

	if f.View {
		ebiten.SetWindowSize(800, 600)
		if err := ebiten.RunGame(viewer.NewViewer(session.Moves())); err != nil {
			glg.Fatalf("Cannot run viewer: %v", err)
		}
	}
}

func loadInput(session *gcgen.Session, f *Flags) {
	if _, err := os.Stat(f.InputFilePath); os.IsNotExist(err) {
		flag.Usage()
		os.Exit(1)
	}

	path := f.InputFilePath
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		if f.Inkscape {
			path = preprocessSVG(path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			glg.Fatalf("Cannot read file %s: %v", path, err)
		}

		imported, skipped, err := session.ImportSVGFrom(data, f.Scale, f.Replace)
		if err != nil {
			glg.Fatalf("Cannot import SVG %s: %v", path, err)
		}
		glg.Infof("imported %d moves from SVG (skipped %d instructions)", imported, skipped)
		return
	}

	file, err := os.Open(path)
	if err != nil {
		glg.Fatalf("Cannot read file %s: %v", path, err)
	}
	defer file.Close()

	imported, skipped, err := session.ImportFrom(file, f.Replace)
	if err != nil {
		glg.Fatalf("Cannot import %s: %v", path, err)
	}
	glg.Infof("imported %d moves (skipped %d lines)", imported, skipped)
}

// preprocessSVG flattens objects to simplified paths so the SVG importer sees
// plain drawing instructions.
func preprocessSVG(path string) string {
	inkscapeProxy := inkscape.NewProxy(inkscape.Verbose(true))
	if err := inkscapeProxy.Run(); err != nil {
		glg.Fatalf("Cannot run inkscape: %v", err)
	}

	defer inkscapeProxy.Close()

	glg.Infof("running inkscape pre-processing")
	convertedFile := path + ".flat.svg"
	inkscapeProxy.RawCommands(
		fmt.Sprintf("file-open:%s", path),
		fmt.Sprintf("export-filename:%s", convertedFile),
		"export-type:svg",
		"select-all",
		"object-to-path",
		"path-simplify",
		"export-do",
	)

	glg.Info("inkscape done.")

	return convertedFile
}

func parseLimit(s string) (gcd.Limit, error) {
	if s == "" {
		return gcd.Limit{}, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return gcd.Limit{}, err
	}

	return gcd.Bound(v), nil
}

func saveProgram(session *gcgen.Session, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := session.ExportTo(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
