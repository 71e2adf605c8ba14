/*
 * rpl48 - Console meta-commands.
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

// Package command is the console's small set of meta-commands — things
// that inspect or configure the runtime rather than push RPL objects,
// e.g. ".vars", ".stack", ".set". A flat option-kind table covers the
// handful of option kinds a calculator console setting needs (switch,
// name, number).
package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hpcalc/rpl48/config/settings"
	"github.com/hpcalc/rpl48/directory"
	"github.com/hpcalc/rpl48/eval"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/render"
	"github.com/hpcalc/rpl48/rplerr"
	"github.com/hpcalc/rpl48/stackview"
	"github.com/hpcalc/rpl48/util/hex"
)

// metaFunc implements one dot-command. args excludes the command name.
type metaFunc func(r *Registry, args []string) (quit bool, err error)

// Registry holds the console's meta-command table plus the runtime
// pieces they inspect or mutate.
type Registry struct {
	Dir      *directory.Stack
	Settings *settings.Registry
	Machine  *eval.Machine
	View     *stackview.View

	table map[string]metaFunc
}

// NewRegistry builds the registry with the built-in command set
// already installed.
func NewRegistry(dir *directory.Stack, st *settings.Registry, m *eval.Machine, v *stackview.View) *Registry {
	r := &Registry{Dir: dir, Settings: st, Machine: m, View: v, table: make(map[string]metaFunc)}
	r.table[".exit"] = cmdExit
	r.table[".quit"] = cmdExit
	r.table[".stack"] = cmdStack
	r.table[".vars"] = cmdVars
	r.table[".set"] = cmdSet
	r.table[".clear"] = cmdClear
	r.table[".help"] = cmdHelp
	r.table[".dump"] = cmdDump
	return r
}

// IsMeta reports whether line names a registered meta-command (its
// first whitespace-separated word starts with '.').
func (r *Registry) IsMeta(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	_, ok := r.table[fields[0]]
	return ok
}

// Run dispatches line to its meta-command.
func (r *Registry) Run(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	fn := r.table[fields[0]]
	return fn(r, fields[1:])
}

// Complete returns completion candidates for partial, used by the
// console's liner completer.
func (r *Registry) Complete(partial string) []string {
	var out []string
	for name := range r.table {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func cmdExit(r *Registry, args []string) (bool, error) { return true, nil }

func cmdClear(r *Registry, args []string) (bool, error) {
	rplerr.Clear()
	return false, nil
}

// cmdStack prints the data stack bottom-up through the stackview
// cache, the same rendering the graphical UI would show.
func cmdStack(r *Registry, args []string) (bool, error) {
	depth := r.Machine.Depth()
	if depth == 0 {
		fmt.Println("(empty)")
		return false, nil
	}
	// Peek(0) is the top of stack; View.Render wants bottom-to-top
	// order for its level numbering, so reverse Peek's order.
	objs := make([]object.Object, depth)
	for i := 0; i < depth; i++ {
		o, _ := r.Machine.Peek(i)
		objs[depth-1-i] = o
	}
	rows := r.View.Render(objs)
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		fmt.Printf("%d: %s\n", row.Level, strings.Join(row.Lines, " "))
	}
	return false, nil
}

func cmdVars(r *Registry, args []string) (bool, error) {
	names := r.Dir.Names()
	if len(names) == 0 {
		fmt.Println("(no variables)")
		return false, nil
	}
	sort.Strings(names)
	for _, n := range names {
		v, ok := r.Dir.Recall(n)
		if !ok {
			continue
		}
		fmt.Printf("%s: %s\n", n, render.String(r.Settings, render.ModeStack, v))
	}
	return false, nil
}

// cmdSet applies one "key value" settings line, e.g. ".set digits 15".
func cmdSet(r *Registry, args []string) (bool, error) {
	if len(args) < 2 {
		return false, fmt.Errorf("usage: .set KEY VALUE")
	}
	if err := r.Settings.Set(args[0], strings.Join(args[1:], " ")); err != nil {
		return false, err
	}
	r.View.InvalidateAll()
	return false, nil
}

// cmdDump prints the raw tag byte and payload of the top-of-stack
// object in hex, for inspecting heap encoding during development.
func cmdDump(r *Registry, args []string) (bool, error) {
	o, ok := r.Machine.Peek(0)
	if !ok {
		return false, fmt.Errorf(".dump: stack is empty")
	}
	fmt.Println(hex.Dump(uint64(o.Tag()), o.Payload()))
	return false, nil
}

func cmdHelp(r *Registry, args []string) (bool, error) {
	names := make([]string, 0, len(r.table))
	for n := range r.table {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println(strings.Join(names, "  "))
	return false, nil
}
