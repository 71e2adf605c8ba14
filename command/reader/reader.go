/*
 * rpl48 - Interactive console.
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

// Package reader is the console's insert-text-at-cursor entry point plus a
// commit-and-parse call. It runs a liner-driven prompt loop (a *liner.State,
// a completer callback, history, Ctrl-C aborts the prompt) but feeds every
// typed line through ui.Controller's InsertAtCursor/Commit pair, so a human
// typing at this prompt and a test harness feeding it strings are
// indistinguishable to the controller underneath.
package reader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/peterh/liner"

	"github.com/hpcalc/rpl48/command"
	"github.com/hpcalc/rpl48/ui"
)

// Console runs the read-eval-print loop until the user aborts (Ctrl-D)
// or types an "exit"/"quit" meta-command.
func Console(ctl *ui.Controller, reg *command.Registry) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return reg.Complete(partial)
	})

	for {
		text, err := line.Prompt("rpl48> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("console: error reading line", "error", err)
			return
		}
		line.AppendHistory(text)

		quit, err := dispatch(ctl, reg, text)
		if err != nil {
			fmt.Println("Error: " + err.Error())
		}
		if quit {
			return
		}
	}
}

// dispatch routes one line of input to a registered meta-command if it
// names one, otherwise feeds it through the controller's insert+commit
// cycle as RPL input, matching how a key queue feeds real keystrokes.
func dispatch(ctl *ui.Controller, reg *command.Registry, text string) (quit bool, err error) {
	if reg.IsMeta(text) {
		return reg.Run(text)
	}
	ctl.Editor.InsertAtCursor(text)
	return false, ctl.Commit()
}
