/*
 * rpl48 - Debug category toggles.
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

// Package debugflags registers per-category debug toggles the way
// config/debugconfig/debugconfig.go registered CPU/CHANNEL/TAPE debug
// categories, generalized from emulator subsystems to rpl48 packages:
// heap, eval, arith, parser, ui.
package debugflags

import (
	"fmt"
	"strings"
)

var categories = map[string]bool{
	"HEAP":   false,
	"EVAL":   false,
	"ARITH":  false,
	"PARSER": false,
	"UI":     false,
}

// Set turns a named debug category on or off; unknown categories are
// an error, matching debugconfig.go's strict unknown-device behavior.
func Set(category string, on bool) error {
	key := strings.ToUpper(category)
	if _, ok := categories[key]; !ok {
		return fmt.Errorf("debugflags: unknown category %q", category)
	}
	categories[key] = on
	return nil
}

// Enabled reports whether a category is currently on.
func Enabled(category string) bool {
	return categories[strings.ToUpper(category)]
}

// ParseFlag applies a "+CATEGORY" / "-CATEGORY" command line token,
// the same +/- toggle shorthand debugconfig.go's option values accept.
func ParseFlag(tok string) error {
	if tok == "" {
		return fmt.Errorf("debugflags: empty flag")
	}
	switch tok[0] {
	case '+':
		return Set(tok[1:], true)
	case '-':
		return Set(tok[1:], false)
	default:
		return Set(tok, true)
	}
}
