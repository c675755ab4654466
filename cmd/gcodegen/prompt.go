package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kpango/glg"

	gcgen "github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg"
	"github.com/BrandenOwens/Two-Axis-Pattern-G-Code-Generator/pkg/gcd"
)

const promptHelp = `commands:
  <x> <y>                submit a move (e.g. "2.5 10")
  list                   show submitted records
  preview <x> <y>        show the record a submit would produce
  undo                   revert the last operation
  rm <i> [<i>...]        remove records by 0-based index
  clear                  remove all records
  loop <dx> <dy> [maxX] [maxY]   append offset groups ("-" skips a limit)
  load <path> [append]   import moves from a file
  save <path>            write the wrapped program
  help                   this text
  quit                   leave`

// runPrompt is the interactive session: one command per line on stdin.
func runPrompt(session *gcgen.Session) {
	fmt.Println(promptHelp)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && !dispatch(session, scanner, fields) {
			return
		}
		fmt.Print("> ")
	}
}

// dispatch runs one command. Returns false on quit.
func dispatch(session *gcgen.Session, scanner *bufio.Scanner, fields []string) bool {
	switch fields[0] {
	case "quit", "exit", "q":
		return false

	case "help":
		fmt.Println(promptHelp)

	case "list":
		for i, rec := range session.Records() {
			fmt.Printf("%3d  %s\n", i, rec)
		}

	case "preview":
		if len(fields) < 3 {
			fmt.Println(gcgen.Preview("", ""))
			break
		}
		fmt.Println(gcgen.Preview(fields[1], fields[2]))

	case "undo":
		if !session.Undo() {
			glg.Warn("nothing to undo")
		}

	case "rm":
		indices := make([]int, 0, len(fields)-1)
		for _, arg := range fields[1:] {
			idx, err := strconv.Atoi(arg)
			if err != nil {
				glg.Warnf("not an index: %q", arg)
				return true
			}
			indices = append(indices, idx)
		}
		session.RemoveAt(indices...)

	case "clear":
		if !confirm(scanner, "Remove all records?") {
			break
		}
		session.Clear()

	case "loop":
		runLoop(session, fields[1:])

	case "load":
		if len(fields) < 2 {
			glg.Warn("load needs a path")
			break
		}
		replace := !(len(fields) > 2 && fields[2] == "append")
		file, err := os.Open(fields[1])
		if err != nil {
			glg.Warnf("cannot read %s: %v", fields[1], err)
			break
		}
		imported, skipped, err := session.ImportFrom(file, replace)
		file.Close()
		if err != nil {
			glg.Warnf("cannot import: %v", err)
			break
		}
		fmt.Printf("imported %d moves (skipped %d lines)\n", imported, skipped)

	case "save":
		if len(fields) < 2 {
			glg.Warn("save needs a path")
			break
		}
		if err := saveProgram(session, fields[1]); err != nil {
			glg.Warnf("cannot save: %v", err)
			break
		}
		fmt.Printf("saved to %s\n", fields[1])

	default:
		if len(fields) != 2 {
			glg.Warnf("unknown command %q (try \"help\")", fields[0])
			break
		}
		record, err := session.Submit(fields[0], fields[1])
		if err != nil {
			glg.Warnf("rejected: %v", err)
			break
		}
		fmt.Println(record)
	}

	return true
}

func runLoop(session *gcgen.Session, args []string) {
	if len(args) < 2 {
		glg.Warn("loop needs at least dx and dy")
		return
	}

	dx, errX := strconv.ParseFloat(args[0], 64)
	dy, errY := strconv.ParseFloat(args[1], 64)
	if errX != nil || errY != nil {
		glg.Warn("dx and dy must be numbers")
		return
	}

	var maxX, maxY gcd.Limit
	if len(args) > 2 && args[2] != "-" {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			glg.Warnf("bad maxX: %q", args[2])
			return
		}
		maxX = gcd.Bound(v)
	}
	if len(args) > 3 && args[3] != "-" {
		v, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			glg.Warnf("bad maxY: %q", args[3])
			return
		}
		maxY = gcd.Bound(v)
	}

	groups, err := session.Loop(dx, dy, maxX, maxY)
	if err != nil {
		glg.Warnf("cannot loop: %v", err)
		return
	}

	fmt.Printf("appended %d offset groups\n", groups)
}

func confirm(scanner *bufio.Scanner, question string) bool {
	fmt.Printf("%s [y/N] ", question)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
