// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package log is the structured, leveled logger used throughout parafollow,
// in the style of the go-abey/go-ethereum "log" package: free functions
// (Trace/Debug/Info/Warn/Error) taking a message followed by alternating
// key/value pairs.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Lvl is the level of a log event.
type Lvl int

const (
	LvlError Lvl = iota
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlError:
		return "eror"
	case LvlWarn:
		return "warn"
	case LvlInfo:
		return "info"
	case LvlDebug:
		return "dbug"
	case LvlTrace:
		return "trce"
	default:
		return "unkn"
	}
}

// Logger emits leveled, structured log records, optionally carrying a fixed
// set of key/value context pairs (see New).
type Logger interface {
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	New(ctx ...interface{}) Logger
}

type logger struct {
	ctx []interface{}
}

var (
	root       Logger = &logger{}
	mu         sync.Mutex
	level             = LvlInfo
	out        io.Writer
	useColor   bool
)

func init() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = colorable.NewColorableStderr()
		useColor = true
	} else {
		out = os.Stderr
	}
}

// SetLevel sets the minimum level emitted by the root logger and every
// logger derived from it via New.
func SetLevel(l Lvl) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects where log records are written; mainly useful for
// tests that want to capture or silence output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// New returns a Logger that always includes ctx in addition to whatever is
// passed at each call site.
func New(ctx ...interface{}) Logger {
	return root.New(ctx...)
}

func Trace(msg string, ctx ...interface{}) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { root.(*logger).write(LvlError, msg, ctx) }

func (l *logger) New(ctx ...interface{}) Logger {
	merged := make([]interface{}, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	merged = append(merged, ctx...)
	return &logger{ctx: merged}
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }

func (l *logger) write(lvl Lvl, msg string, ctx []interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if lvl > level {
		return
	}

	all := make([]interface{}, 0, len(l.ctx)+len(ctx))
	all = append(all, l.ctx...)
	all = append(all, ctx...)

	var b []byte
	b = append(b, time.Now().Format("2006-01-02T15:04:05.000-0700")...)
	b = append(b, ' ')
	b = append(b, colorize(lvl, lvl.String())...)
	b = append(b, ' ')
	b = append(b, msg...)
	for i := 0; i+1 < len(all); i += 2 {
		b = append(b, ' ')
		b = append(b, fmt.Sprintf("%v=%v", all[i], all[i+1])...)
	}
	if lvl == LvlError {
		// Record the caller frame for errors to aid diagnosability.
		b = append(b, fmt.Sprintf(" caller=%+v", stack.Caller(2))...)
	}
	b = append(b, '\n')
	out.Write(b)
}

func colorize(lvl Lvl, s string) string {
	if !useColor {
		return s
	}
	var color int
	switch lvl {
	case LvlError:
		color = 31
	case LvlWarn:
		color = 33
	case LvlInfo:
		color = 32
	case LvlDebug, LvlTrace:
		color = 36
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", color, s)
}
