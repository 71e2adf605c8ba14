/*
 * rpl48 - Settings registry.
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

// Package settings is the small typed settings registry SPEC_FULL.md's
// "Supplemented features" section calls for: angle mode, display
// format/digits, auto-simplify, the 0^0 policy, complex display mode,
// and the unit-prefix cycle, consulted by arith/render/ui. It is
// loaded from the same line-oriented "key value" config file shape
// the removed config/configparser/configparser.go scanned (comment lines starting
// with '#', bare "key value" pairs), generalized from "attach a device
// model" records to "set a calculator setting" records.
package settings

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// AngleMode selects the unit trig functions interpret their argument in.
type AngleMode int

const (
	Degrees AngleMode = iota
	Radians
	Grads
)

// ComplexMode selects how a complex result is displayed.
type ComplexMode int

const (
	ComplexRectangular ComplexMode = iota
	ComplexPolar
)

// Registry is the process-wide settings table. It satisfies
// arith.Settings directly so the evaluator can hand one straight to
// arith.Eval.
type Registry struct {
	autoSimplify    bool
	zeroToZeroIsOne bool
	angle           AngleMode
	digits          int
	complexMode     ComplexMode
	beepFreq        int
	beepMillis      int
	clearOnAnyKey   bool
	unitPrefixCycle []string
}

// New returns a Registry with the defaults documented in SPEC_FULL.md:
// 0^0 = 1 unless overridden, unit-prefix cycle "m, µ, k, M" unless
// overridden.
func New() *Registry {
	return &Registry{
		autoSimplify:    true,
		zeroToZeroIsOne: true,
		angle:           Degrees,
		digits:          12,
		complexMode:     ComplexRectangular,
		beepFreq:        2000,
		beepMillis:      100,
		clearOnAnyKey:   true,
		unitPrefixCycle: []string{"m", "µ", "k", "M"},
	}
}

func (r *Registry) AutoSimplify() bool     { return r.autoSimplify }
func (r *Registry) ZeroToZeroIsOne() bool  { return r.zeroToZeroIsOne }
func (r *Registry) Angle() AngleMode       { return r.angle }
func (r *Registry) Digits() int            { return r.digits }
func (r *Registry) ComplexMode() ComplexMode { return r.complexMode }
func (r *Registry) BeepFreqHz() int        { return r.beepFreq }
func (r *Registry) BeepMillis() int        { return r.beepMillis }
func (r *Registry) ClearOnAnyKey() bool    { return r.clearOnAnyKey }

// UnitPrefixCycle returns the ordered prefix list the "E" key cycles a unit
// word's SI prefix through.
func (r *Registry) UnitPrefixCycle() []string { return r.unitPrefixCycle }

// Set applies a single "key value" setting line. Unknown keys return
// an error naming the key, the same strict-unknown-key behavior
// the removed configparser.go's Option scanner had for unknown device models.
func (r *Registry) Set(key, value string) error {
	switch strings.ToUpper(key) {
	case "AUTOSIMPLIFY":
		return r.setBool(&r.autoSimplify, value)
	case "ZEROTOZEROISONE":
		return r.setBool(&r.zeroToZeroIsOne, value)
	case "CLEARONANYKEY":
		return r.setBool(&r.clearOnAnyKey, value)
	case "ANGLE":
		switch strings.ToUpper(value) {
		case "DEG", "DEGREES":
			r.angle = Degrees
		case "RAD", "RADIANS":
			r.angle = Radians
		case "GRAD", "GRADS":
			r.angle = Grads
		default:
			return fmt.Errorf("settings: unknown angle mode %q", value)
		}
	case "DIGITS":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("settings: DIGITS requires a number: %w", err)
		}
		r.digits = n
	case "COMPLEXMODE":
		switch strings.ToUpper(value) {
		case "RECT", "RECTANGULAR":
			r.complexMode = ComplexRectangular
		case "POLAR":
			r.complexMode = ComplexPolar
		default:
			return fmt.Errorf("settings: unknown complex mode %q", value)
		}
	case "BEEPFREQ":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("settings: BEEPFREQ requires a number: %w", err)
		}
		r.beepFreq = n
	case "BEEPMILLIS":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("settings: BEEPMILLIS requires a number: %w", err)
		}
		r.beepMillis = n
	case "UNITPREFIXCYCLE":
		r.unitPrefixCycle = strings.Split(value, ",")
		for i := range r.unitPrefixCycle {
			r.unitPrefixCycle[i] = strings.TrimSpace(r.unitPrefixCycle[i])
		}
	default:
		return fmt.Errorf("settings: unknown setting %q", key)
	}
	return nil
}

func (r *Registry) setBool(dst *bool, value string) error {
	switch strings.ToUpper(value) {
	case "ON", "TRUE", "1", "YES":
		*dst = true
	case "OFF", "FALSE", "0", "NO":
		*dst = false
	default:
		return fmt.Errorf("settings: not a boolean: %q", value)
	}
	return nil
}

// Load reads a settings file line by line: blank lines and lines
// starting with '#' are skipped; every other line is "key value" or
// "key=value", mirroring the removed configparser.go's optionLine scanner.
func Load(r *Registry, rd io.Reader) error {
	scanner := bufio.NewScanner(rd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.ReplaceAll(line, "=", " ")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("settings: line %d: expected \"key value\"", lineNo)
		}
		if err := r.Set(fields[0], strings.Join(fields[1:], " ")); err != nil {
			return fmt.Errorf("settings: line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}
