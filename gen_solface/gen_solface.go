/*
A CLI tool that reads contract artifacts as *.json files and outputs the
generated interface declarations as *.go code, or as plain interface source.

Installation:

	go install github.com/purelabio/solface/gen_solface@latest

Example usage:

	gen_solface -help
	gen_solface -out gen_ifaces.go out/Token.json:Token

To use with "go generate", include a "go:generate" comment in your source
code:

	//go:generate gen_solface -out gen_ifaces.go out/Token.json:Token

The generated file contains, per contract: the assembled declaration value,
the interface source text, the pretty-printed ABI JSON, and the compiled
bytecode, as Go constants and variables. The generated code doesn't contain
any function calls and has no impact on the program startup.
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/mitranim/repr"
	"github.com/pkg/errors"
	"github.com/purelabio/solface"
)

var (
	flagOut  = flag.String("out", "", "output path for the generated file (required)")
	flagPkg  = flag.String("pkg", "main", "package name for the generated Go code")
	flagSol  = flag.Bool("sol", false, "emit plain interface declarations instead of Go code")
	flagSelf = flag.Bool("self", false, "generate without imports or package prefixes")
)

var codeTemplate = template.Must(template.New("").
	Funcs(template.FuncMap{
		"repr":      reprString,
		"reprBytes": func(input solface.HexBytes) string { return reprString(input) },
	}).
	Parse(`
{{range .}}

var {{.Name}}Decl = {{.Decl | repr}}

const {{.Name}}Interface = ` + "`" + `{{.Interface}}` + "`" + `

const {{.Name}}AbiJson = ` + "`" + `{{.AbiJson}}` + "`" + `

var {{.Name}}Code = {{.Code | reprBytes}}

{{end}}
`))

type genContract struct {
	Name      string
	Decl      solface.Declaration
	Interface string
	AbiJson   string
	Code      solface.HexBytes
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	execName := os.Args[0]

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %v:

	%v <flags> <specs ...>

Specs must have the form "artifactPath:interfaceName"; the name defaults to
the file stem. Examples:

	%v -out=gen_ifaces.go out/Token.json:Token
	%v -sol -out=ifaces.sol out/Token.json out/Market.json:Market

`, execName, execName, execName, execName)
		flag.PrintDefaults()
		flag.CommandLine.Output().Write([]byte("\n"))
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	flag.Parse()

	if *flagOut == "" {
		return errors.New(`must specify "-out": output path for the generated file`)
	}

	specs := flag.Args()
	if len(specs) == 0 {
		return errors.New(`must specify at least one artifact, in the form "<artifactPath>:<interfaceName>"`)
	}

	var contracts []genContract
	for _, spec := range specs {
		contract, err := expandSpec(spec)
		if err != nil {
			return err
		}
		contracts = append(contracts, contract)
	}

	sort.Slice(contracts, func(a, b int) bool {
		return contracts[a].Name < contracts[b].Name
	})

	var buf bytes.Buffer
	if *flagSol {
		for i, contract := range contracts {
			if i > 0 {
				buf.WriteString("\n\n")
			}
			buf.WriteString(contract.Decl.String())
		}
		buf.WriteByte('\n')
		return writeOut(buf.Bytes())
	}

	fmt.Fprintf(&buf, "package %v\n", *flagPkg)
	if !*flagSelf {
		buf.WriteString(`import "github.com/purelabio/solface"` + "\n")
	}

	err := codeTemplate.Execute(&buf, contracts)
	if err != nil {
		panic(err)
	}

	source, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "failed to format the generated code")
	}
	return writeOut(source)
}

func expandSpec(spec string) (genContract, error) {
	path := spec
	name := ""

	colon := strings.LastIndexByte(spec, ':')
	if colon >= 0 {
		path = spec[:colon]
		name = spec[colon+1:]
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	input, err := os.ReadFile(path)
	if err != nil {
		return genContract{}, errors.Wrapf(err, "failed to read artifact %q", path)
	}

	artifact, err := solface.DecodeContractArtifact(input)
	if err != nil {
		return genContract{}, errors.Wrapf(err, "failed to decode artifact %q", path)
	}

	decl, err := solface.Expand(name, artifact, nil)
	if err != nil {
		return genContract{}, errors.Wrapf(err, "failed to expand artifact %q", path)
	}

	out := genContract{
		Name:      name,
		Decl:      decl,
		Interface: "interface " + decl.Name + " " + decl.Body,
		AbiJson:   artifact.AbiJson,
	}
	if artifact.Abi.Bytecode != "" {
		out.Code, err = solface.ParseHexBytes(artifact.Abi.Bytecode)
		if err != nil {
			return genContract{}, errors.Wrapf(err, "failed to decode bytecode from %q", path)
		}
	}
	return out, nil
}

func writeOut(source []byte) error {
	const readWriteMode = os.FileMode(0600)
	err := os.WriteFile(*flagOut, source, readWriteMode)
	if err != nil {
		return errors.Wrapf(err, "failed to write %q", *flagOut)
	}
	return nil
}

func reprString(val interface{}) string {
	if *flagSelf {
		return repr.StringC(val, repr.Config{
			PackageMap: map[string]string{
				"github.com/purelabio/solface": "",
			},
		})
	}
	return repr.String(val)
}
