package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/sergev/plc/compiler"
	"github.com/sergev/plc/config"
	"github.com/sergev/plc/parser"
)

func runREPL(session *compiler.Session, cfg config.Config) {
	if !isInteractive() {
		runBufferedREPL(session, bufio.NewReader(os.Stdin), os.Stdout, os.Stderr)
		return
	}
	runInteractiveREPL(session, cfg)
}

// replCommand handles :program and :reset. It reports whether line was
// a command.
func replCommand(session *compiler.Session, line string, out, errOut io.Writer) bool {
	switch strings.TrimSpace(line) {
	case ":program":
		program, err := session.Program()
		if err != nil {
			printError(errOut, err)
			return true
		}
		io.WriteString(out, program)
		return true
	case ":reset":
		session.Reset()
		return true
	default:
		return false
	}
}

// compileInput adds src to the session. It returns false when src is
// incomplete and more input should be read.
func compileInput(session *compiler.Session, src string, out, errOut io.Writer, atEOF bool) bool {
	java, err := session.Add(src)
	if err != nil {
		if parser.IsIncomplete(err) && !atEOF {
			return false
		}
		printError(errOut, err)
		return true
	}
	io.WriteString(out, java)
	return true
}

func runBufferedREPL(session *compiler.Session, reader *bufio.Reader, out, errOut io.Writer) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(errOut, "read error: %v\n", err)
			return
		}
		atEOF := err != nil
		if buffer.Len() == 0 && replCommand(session, line, out, errOut) {
			if atEOF {
				return
			}
			continue
		}
		buffer.WriteString(line)
		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
		} else if compileInput(session, src, out, errOut, atEOF) {
			buffer.Reset()
		}
		if atEOF {
			return
		}
	}
}

func runInteractiveREPL(session *compiler.Session, cfg config.Config) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := cfg.HistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := cfg.REPL.Prompt
		if buffer.Len() > 0 {
			prompt = cfg.REPL.Continuation
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		if buffer.Len() == 0 && replCommand(session, input, os.Stdout, os.Stderr) {
			state.AppendHistory(strings.TrimSpace(input))
			continue
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if !compileInput(session, src, os.Stdout, os.Stderr, false) {
			continue
		}
		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))
	}
}
