// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/config"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/player"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Run loads the document and runs the command script in the given file
// against it. See [Runner] for the commands.
func Run(c *config.Config, w io.Writer, doc, script string) error {
	f, err := os.Open(script)
	if err != nil {
		return err
	}
	defer f.Close()
	r := &Runner{Out: w}
	app, err := Load(c, doc, r)
	if err != nil {
		return err
	}
	defer app.Close()
	r.App = app
	return r.Run(f)
}

// Runner runs command scripts against an application. Each line of a
// script is one command, split into words as by a shell; empty lines
// and lines starting with # are skipped. Paths are
// [presentation:]object as in [player.Application.Object]; where a path
// is optional it defaults to the scene of the initial presentation.
// The commands are:
//
//	goto [path] slide      go to a slide by name, #id or index
//	next [path] [wrap]     go to the next slide
//	prev [path] [wrap]     go to the previous slide
//	back [path]            go to the previously current slide
//	play [path]            start the timeline
//	pause [path]           stop the timeline
//	time [path] ms         set the time on the current slide
//	set path prop value    set a property
//	get path prop          print a property
//	fire path event        fire an event on an object
//	input name value       set a data input
//	tick ms [count]        advance time count times by ms
//	print                  print the state of all timelines
//
// Runner is also the [player.Host] of the application, printing the
// behavior calls and signals it receives.
type Runner struct {

	// App is the application the commands run against.
	App *player.Application

	// Out receives the output of the commands.
	Out io.Writer

	// line is the number of the script line being run.
	line int
}

// ScriptError is an error of a script command.
type ScriptError struct {
	Line    int
	Command string
	Err     error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Command, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// Run runs the script read from r, stopping at the first failing
// command.
func (r *Runner) Run(rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	r.line = 0
	for sc.Scan() {
		r.line++
		if err := r.Exec(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Exec runs one command line.
func (r *Runner) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		return &ScriptError{Line: r.line, Command: line, Err: err}
	}
	if len(args) == 0 {
		return nil
	}
	if err := r.exec(args[0], args[1:]); err != nil {
		return &ScriptError{Line: r.line, Command: args[0], Err: err}
	}
	return nil
}

func (r *Runner) exec(cmd string, args []string) error {
	switch cmd {
	case "goto":
		if err := nargs(args, 1, 2); err != nil {
			return err
		}
		return r.App.GoToSlide(r.pathArg(args, 2), args[len(args)-1])
	case "next", "prev":
		if err := nargs(args, 0, 2); err != nil {
			return err
		}
		wrap := len(args) > 0 && args[len(args)-1] == "wrap"
		if wrap {
			args = args[:len(args)-1]
		}
		if cmd == "next" {
			return r.App.NextSlide(r.pathArg(args, 1), wrap)
		}
		return r.App.PreviousSlide(r.pathArg(args, 1), wrap)
	case "back":
		if err := nargs(args, 0, 1); err != nil {
			return err
		}
		return r.App.PrecedingSlide(r.pathArg(args, 1))
	case "play":
		if err := nargs(args, 0, 1); err != nil {
			return err
		}
		return r.App.Play(r.pathArg(args, 1))
	case "pause":
		if err := nargs(args, 0, 1); err != nil {
			return err
		}
		return r.App.Pause(r.pathArg(args, 1))
	case "time":
		if err := nargs(args, 1, 2); err != nil {
			return err
		}
		ms, err := props.ParseFloat(args[len(args)-1])
		if err != nil {
			return err
		}
		return r.App.GoToTime(r.pathArg(args, 2), ms)
	case "set":
		if err := nargs(args, 3, 3); err != nil {
			return err
		}
		return r.App.SetAttribute(args[0], args[1], args[2])
	case "get":
		if err := nargs(args, 2, 2); err != nil {
			return err
		}
		v, err := r.App.Attribute(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Out, "%s.%s = %s\n", args[0], args[1], v.String())
		return nil
	case "fire":
		if err := nargs(args, 2, 2); err != nil {
			return err
		}
		return r.App.FireEvent(args[0], args[1])
	case "input":
		if err := nargs(args, 2, 2); err != nil {
			return err
		}
		return r.App.SetDataInputValue(args[0], args[1])
	case "tick":
		if err := nargs(args, 1, 2); err != nil {
			return err
		}
		ms, err := props.ParseFloat(args[0])
		if err != nil {
			return err
		}
		n := 1
		if len(args) == 2 {
			if n, err = strconv.Atoi(args[1]); err != nil {
				return err
			}
		}
		for range n {
			r.App.Advance(ms)
		}
		return nil
	case "print":
		if err := nargs(args, 0, 0); err != nil {
			return err
		}
		r.print()
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// nargs checks that there are between lo and hi arguments.
func nargs(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("want %d arguments, got %d", lo, len(args))
		}
		return fmt.Errorf("want %d to %d arguments, got %d", lo, hi, len(args))
	}
	return nil
}

// pathArg returns the path given as the first argument when there are
// n arguments, and else the scene of the initial presentation.
func (r *Runner) pathArg(args []string, n int) string {
	if len(args) == n {
		return args[0]
	}
	pr := r.App.Initial()
	if pr == nil {
		return ""
	}
	return "#" + pr.Graph.ID(pr.Graph.Scene())
}

// print writes the state of every timeline.
func (r *Runner) print() {
	for id, pr := range r.App.Presentations.All() {
		g := pr.Graph
		for _, tl := range pr.Timelines() {
			state := "paused"
			if tl.Playing {
				state = "playing"
			}
			fmt.Fprintf(r.Out, "%s:%s slide=%s time=%g/%g %s\n", id, g.ID(g.Slide(tl.Master).Scope),
				slideLabel(g, tl.Slide), tl.Time, tl.Duration, state)
		}
	}
}

// CallBehavior implements [player.Host].
func (r *Runner) CallBehavior(pr *player.Presentation, obj tree.Handle, handler string, args []graph.HandlerArgument) {
	vals := make([]string, len(args))
	for i, a := range args {
		vals[i] = a.Value
	}
	fmt.Fprintf(r.Out, "behavior %s:%s %s(%s)\n", pr.ID, pr.Graph.ID(obj), handler, strings.Join(vals, ", "))
}

// Signal implements [player.Host].
func (r *Runner) Signal(pr *player.Presentation, obj tree.Handle, name string) {
	fmt.Fprintf(r.Out, "signal %s:%s %s\n", pr.ID, pr.Graph.ID(obj), name)
}
