package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/pixll/wasm-bridge/bindgen"
	"github.com/pixll/wasm-bridge/webidl"
)

func main() {
	var (
		idlFile     = flag.String("idl", "", "Path to WebIDL definition file")
		pkgName     = flag.String("pkg", "bindings", "Package name for the generated file")
		outFile     = flag.String("o", "", "Output path (stdout if empty)")
		list        = flag.Bool("list", false, "List the binding surface and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *idlFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: bindgen -idl <file.webidl> [-pkg name] [-o out.go]")
		fmt.Fprintln(os.Stderr, "       bindgen -idl <file.webidl> -list")
		fmt.Fprintln(os.Stderr, "       bindgen -idl <file.webidl> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*idlFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*idlFile, *pkgName, *outFile, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(idlFile, pkgName, outFile string, listOnly bool) error {
	source, err := os.ReadFile(idlFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	schema, err := webidl.Parse(string(source))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	surface, err := bindgen.Generate(schema)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if listOnly {
		printSurface(idlFile, schema, surface)
		return nil
	}

	src := bindgen.EmitGo(surface, bindgen.EmitOptions{Package: pkgName})

	if outFile == "" {
		_, err := os.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(outFile, src, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Wrote %s (%d bytes, %d trampolines)\n", outFile, len(src), len(surface.Symbols()))
	return nil
}

func printSurface(idlFile string, schema *webidl.Schema, surface *bindgen.Surface) {
	fmt.Printf("Schema: %s\n", idlFile)
	fmt.Printf("Interfaces: %d\n", len(schema.Interfaces))

	for i := range surface.Interfaces {
		ib := &surface.Interfaces[i]
		fmt.Printf("\n%s\n", ib.Name)

		for _, attr := range ib.Attributes {
			ro := ""
			if attr.Readonly {
				ro = " (readonly)"
			}
			fmt.Printf("  attribute %s %s%s\n", attr.Type, attr.Name, ro)
		}

		for t := range ib.Trampolines {
			tr := &ib.Trampolines[t]
			static := ""
			if tr.Static {
				static = " static"
			}
			fmt.Printf("  %s%s %s\n", tr.Symbol, static, tr.WireSignature())
		}
	}
}
