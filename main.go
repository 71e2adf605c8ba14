/*
 * rpl48 - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"log/slog"
	"os"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	command "github.com/hpcalc/rpl48/command"
	reader "github.com/hpcalc/rpl48/command/reader"
	"github.com/hpcalc/rpl48/config/debugflags"
	"github.com/hpcalc/rpl48/config/settings"
	"github.com/hpcalc/rpl48/directory"
	"github.com/hpcalc/rpl48/eval"
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/render"
	"github.com/hpcalc/rpl48/stackview"
	"github.com/hpcalc/rpl48/ui"
	logger "github.com/hpcalc/rpl48/util/logger"
)

// heapBytes sizes the single contiguous arena describe; a handheld build would
// size this from actual RAM, a host build just picks something generous enough
// that compaction is rarely exercised by an interactive console.
const heapBytes = 4 << 20

var Logger *slog.Logger

// noInterrupt satisfies eval.InterruptSource with the host console's stand-ins
// for the three real-hardware signals polls every loop iteration: there is no
// exit-key debounce, power sampler, or battery monitor wired to a terminal, so
// all three report quiescent.
type noInterrupt struct{}

func (noInterrupt) ExitKeyPending() bool { return false }
func (noInterrupt) PowerSampleDue() bool { return false }
func (noInterrupt) LowBattery() bool     { return false }

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Settings file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optScript := getopt.StringLong("script", 's', "", "RPL script to run non-interactively")
	optDebug := getopt.StringLong("debug", 'd', "", "Comma-separated debug flags, e.g. +EVAL,-HEAP")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	debugOn := false
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debugOn))
	slog.SetDefault(Logger)

	for _, tok := range strings.Split(*optDebug, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if err := debugflags.ParseFlag(tok); err != nil {
			Logger.Error("bad --debug flag", "flag", tok, "error", err)
			os.Exit(1)
		}
	}

	st := settings.New()
	if *optConfig != "" {
		f, err := os.Open(*optConfig)
		if err != nil {
			Logger.Error("cannot open settings file", "path", *optConfig, "error", err)
			os.Exit(1)
		}
		err = settings.Load(st, f)
		f.Close()
		if err != nil {
			Logger.Error("settings file error", "error", err)
			os.Exit(1)
		}
	}

	h := heap.New(heapBytes)
	dir := directory.NewStack(h)
	m := eval.NewMachine(h, dir, st, noInterrupt{})

	view := stackview.NewView(st)
	view.ScreenHeight = 64
	view.HeaderHeight = 8
	view.Width = 22
	view.Mode = render.ModeStack

	ctl := ui.NewController(h, m)
	reg := command.NewRegistry(dir, st, m, view)

	Logger.Info("rpl48 started")

	if *optScript != "" {
		runScript(ctl, *optScript)
	} else {
		reader.Console(ctl, reg)
	}

	Logger.Info("rpl48 shutting down")
}

// runScript feeds a file's non-blank lines through the same controller
// path the interactive console uses, one line at a time, stopping at
// the first error.
func runScript(ctl *ui.Controller, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		Logger.Error("cannot read script", "path", path, "error", err)
		os.Exit(1)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		ctl.Editor.InsertAtCursor(line)
		if err := ctl.Commit(); err != nil {
			Logger.Error("script error", "line", line, "error", err)
			os.Exit(1)
		}
	}
}
