package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	fog "github.com/ForeverFlank/fog"
)

const (
	appName     = "fog"
	historyFile = ".fog_history"
	promptMain  = "fog> "
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		if len(os.Args) != 3 {
			usage()
			os.Exit(2)
		}
		os.Exit(cmdRun(os.Args[2]))
	case "tokens":
		if len(os.Args) != 3 {
			usage()
			os.Exit(2)
		}
		os.Exit(cmdTokens(os.Args[2]))
	case "ast":
		if len(os.Args) != 3 {
			usage()
			os.Exit(2)
		}
		os.Exit(cmdAST(os.Args[2]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(fog.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		// Bare form: exactly one positional argument, a source path.
		if len(os.Args) != 2 {
			usage()
			os.Exit(2)
		}
		os.Exit(cmdRun(cmd))
	}
}

func usage() {
	fmt.Printf(`Fog %s

Usage:
  %s <file.fog>          Run a program and print its global bindings.
  %s run <file.fog>      Same as the bare form.
  %s tokens <file.fog>   Print the token stream.
  %s ast <file.fog>      Print the parse tree.
  %s repl                Start the REPL.
  %s version             Print the version.
`, fog.Version, appName, appName, appName, appName, appName, appName)
}

func readSource(path string) (string, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return "", 1
	}
	return string(data), 0
}

func cmdRun(path string) int {
	src, code := readSource(path)
	if code != 0 {
		return code
	}
	prog, err := fog.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, fog.WrapErrorWithName(err, path, src))
		return 1
	}
	ip := fog.NewInterpreter()
	if err := ip.Run(prog); err != nil {
		fmt.Fprintln(os.Stderr, fog.WrapErrorWithName(err, path, src))
		return 1
	}
	fmt.Print(fog.FormatBindings(ip.Global))
	return 0
}

func cmdTokens(path string) int {
	src, code := readSource(path)
	if code != 0 {
		return code
	}
	tokens, err := fog.Tokenize(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, fog.WrapErrorWithName(err, path, src))
		return 1
	}
	fmt.Print(fog.FormatTokens(tokens))
	return 0
}

func cmdAST(path string) int {
	src, code := readSource(path)
	if code != 0 {
		return code
	}
	prog, err := fog.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, fog.WrapErrorWithName(err, path, src))
		return 1
	}
	fmt.Print(fog.FormatAST(prog))
	return 0
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func cmdRepl() int {
	ip := fog.NewInterpreter()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Printf("Fog %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", fog.Version)

	for {
		input, err := line.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		if strings.TrimSpace(input) == ":quit" {
			break
		}
		line.AppendHistory(input)

		prog, err := fog.ParseInteractive(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, fog.WrapErrorWithName(err, "<repl>", input))
			continue
		}
		for _, st := range prog.Stmts {
			if es, ok := st.(*fog.ExprStmt); ok {
				v, err := ip.EvalExpr(es.Expr, ip.Global)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					break
				}
				fmt.Println(fog.FormatValue(v))
				continue
			}
			if err := ip.Exec(st, ip.Global); err != nil {
				fmt.Fprintln(os.Stderr, err)
				break
			}
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return 0
}
