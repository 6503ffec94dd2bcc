package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"hdrmeta/pkg/meta"
	"hdrmeta/pkg/scanner"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Scan header files and output their declaration trees",
	Long: `Scan one or more header files and emit the extracted declaration tree.
Files are scanned concurrently; each scan is independent. The output can be
JSON or YAML for further processing, or a human-readable tree.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFlag)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.Format
		}
		if format == "" {
			format = "human"
		}

		results, err := scanAll(cfg, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			return outputJSON(out, results)
		case "yaml":
			return outputYAML(out, results)
		case "human":
			return outputHuman(out, results)
		default:
			return fmt.Errorf("unknown output format %q", format)
		}
	},
}

func init() {
	scanCmd.Flags().StringP("format", "f", "", "Output format (human, json, yaml)")
}

type scanResult struct {
	File     *meta.File
	Warnings []scanner.Diagnostic
}

// scanAll scans the given files concurrently. Each scan owns its own state,
// so the only shared data is the per-file result slot.
func scanAll(cfg *Config, paths []string) ([]*scanResult, error) {
	slots := make([]*scanResult, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		if cfg.excluded(path) {
			slog.Debug("skipping excluded file", "file", path)
			continue
		}
		i, path := i, path
		g.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", path, err)
			}
			file, warnings, err := scanner.Scan(path, string(content))
			if err != nil {
				return fmt.Errorf("failed to scan file %s: %w", path, err)
			}
			slots[i] = &scanResult{File: file, Warnings: warnings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []*scanResult
	for _, r := range slots {
		if r == nil {
			continue
		}
		for _, w := range r.Warnings {
			slog.Warn("scan warning", "file", r.File.Filename, "line", w.Line, "kind", w.Kind.String(), "detail", w.Message)
		}
		results = append(results, r)
	}
	return results, nil
}

// Serializable mirror of the declaration tree for json/yaml output.
type outMember struct {
	Kind          string     `json:"kind" yaml:"kind"`
	Name          string     `json:"name" yaml:"name"`
	Line          int        `json:"line" yaml:"line"`
	Type          string     `json:"type,omitempty" yaml:"type,omitempty"`
	Default       string     `json:"default,omitempty" yaml:"default,omitempty"`
	Attributes    []string   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Params        []outParam `json:"params,omitempty" yaml:"params,omitempty"`
	IsConst       bool       `json:"isConst,omitempty" yaml:"isConst,omitempty"`
	HasInlineBody bool       `json:"hasInlineBody,omitempty" yaml:"hasInlineBody,omitempty"`
}

type outParam struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

type outEnumerator struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

type outDecl struct {
	Kind        string          `json:"kind" yaml:"kind"`
	Name        string          `json:"name" yaml:"name"`
	Line        int             `json:"line" yaml:"line"`
	Attributes  []string        `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Target      string          `json:"target,omitempty" yaml:"target,omitempty"`
	Scope       string          `json:"scope,omitempty" yaml:"scope,omitempty"`
	HasValue    bool            `json:"hasValue,omitempty" yaml:"hasValue,omitempty"`
	Members     []outMember     `json:"members,omitempty" yaml:"members,omitempty"`
	Enumerators []outEnumerator `json:"enumerators,omitempty" yaml:"enumerators,omitempty"`
	Children    []outDecl       `json:"children,omitempty" yaml:"children,omitempty"`
}

type outFile struct {
	Filename string    `json:"filename" yaml:"filename"`
	Includes []string  `json:"includes,omitempty" yaml:"includes,omitempty"`
	Decls    []outDecl `json:"declarations" yaml:"declarations"`
}

func convertDecl(d *meta.Decl) outDecl {
	od := outDecl{
		Kind:       d.Kind.String(),
		Name:       d.Name,
		Line:       d.Line,
		Attributes: d.Attributes,
		Target:     d.Target,
		Scope:      d.Scope,
		HasValue:   d.HasValue,
	}
	for _, m := range d.Members {
		om := outMember{
			Kind:          m.Kind.String(),
			Name:          m.Name,
			Line:          m.Line,
			Type:          m.Type,
			Default:       m.Default,
			Attributes:    m.Attributes,
			IsConst:       m.IsConst,
			HasInlineBody: m.HasInlineBody,
		}
		for _, p := range m.Params {
			om.Params = append(om.Params, outParam{Type: p.Type, Name: p.Name})
		}
		od.Members = append(od.Members, om)
	}
	for _, e := range d.Enumerators {
		od.Enumerators = append(od.Enumerators, outEnumerator{Name: e.Name, Value: e.Value})
	}
	for _, c := range d.Children {
		od.Children = append(od.Children, convertDecl(c))
	}
	return od
}

func convertFile(f *meta.File) outFile {
	of := outFile{Filename: f.Filename, Includes: f.Includes}
	for _, d := range f.Decls {
		of.Decls = append(of.Decls, convertDecl(d))
	}
	return of
}

func outputJSON(w io.Writer, results []*scanResult) error {
	files := make([]outFile, 0, len(results))
	for _, r := range results {
		files = append(files, convertFile(r.File))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{"files": files})
}

func outputYAML(w io.Writer, results []*scanResult) error {
	files := make([]outFile, 0, len(results))
	for _, r := range results {
		files = append(files, convertFile(r.File))
	}
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(map[string]interface{}{"files": files})
}

func outputHuman(w io.Writer, results []*scanResult) error {
	for _, r := range results {
		fmt.Fprintf(w, "Scanned file: %s\n", r.File.Filename)
		fmt.Fprintf(w, "=====================================\n\n")

		for _, inc := range r.File.Includes {
			fmt.Fprintf(w, "include: %s\n", inc)
		}
		if len(r.File.Includes) > 0 {
			fmt.Fprintln(w)
		}

		for _, d := range r.File.Decls {
			printDecl(w, d, 0)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printDecl(w io.Writer, d *meta.Decl, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	fmt.Fprintf(w, "%s%s: %s", indent, d.Kind, declLabel(d))
	fmt.Fprintf(w, " (line %d)\n", d.Line)

	for _, m := range d.Members {
		fmt.Fprintf(w, "%s  %s: %s", indent, m.Kind, m.Name)
		if m.Kind == meta.MemberField {
			fmt.Fprintf(w, " : %s", m.Type)
			if m.Default != "" {
				fmt.Fprintf(w, " = %s", m.Default)
			}
		} else {
			fmt.Fprintf(w, "(%d params)", len(m.Params))
			if m.IsConst {
				fmt.Fprintf(w, " [const]")
			}
			if m.HasInlineBody {
				fmt.Fprintf(w, " [inline]")
			}
		}
		fmt.Fprintln(w)
	}

	for _, e := range d.Enumerators {
		if e.Value != "" {
			fmt.Fprintf(w, "%s  %s = %s\n", indent, e.Name, e.Value)
		} else {
			fmt.Fprintf(w, "%s  %s\n", indent, e.Name)
		}
	}

	for _, c := range d.Children {
		printDecl(w, c, depth+1)
	}
}

func declLabel(d *meta.Decl) string {
	switch d.Kind {
	case meta.DeclAlias:
		return fmt.Sprintf("%s -> %s", d.Name, d.Target)
	case meta.DeclNamespace:
		if d.Name == "" {
			return "(anonymous)"
		}
	}
	return d.Name
}
