package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kpango/glg"

	gcgen "github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg"
	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/viewer"
)

func main() {
	inputFile := flag.String("i", "", "Input file")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		glg.Fatal("Input file is required")
	}

	file, err := os.Open(*inputFile)
	if err != nil {
		glg.Fatal(err)
	}

	session := gcgen.NewSession()
	imported, skipped, err := session.ImportFrom(file, true)
	file.Close()
	if err != nil {
		glg.Fatal(err)
	}

	glg.Infof("loaded %d moves (skipped %d lines)", imported, skipped)

	ebiten.SetWindowSize(800, 600)
	if err := ebiten.RunGame(viewer.NewViewer(session.Moves())); err != nil {
		glg.Fatal(err)
	}
}
