package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/classgen/classfile"
	"github.com/wippyai/classgen/synth"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "classgen",
		Short: "Synthesize a type and inspect its generated class file",
		Long: `classgen builds a demonstration type through a generation context:
cached constants in the type initializer, field accessors and a bridge used
by an auxiliary type. The drained result can be listed, written as class
files or browsed interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "config file (default ./classgen.yaml)")
	root.PersistentFlags().String("type", "", "internal name of the generated type")
	root.PersistentFlags().Int("java", 0, "target Java release")
	root.PersistentFlags().String("naming", "", "auxiliary type naming: sequential or random")
	root.PersistentFlags().BoolP("verbose", "v", false, "log generation steps to stderr")

	root.AddCommand(newDumpCommand())
	root.AddCommand(newWriteCommand())
	root.AddCommand(newInspectCommand())
	root.AddCommand(newBrowseCommand())
	return root
}

// prepare loads the configuration and installs the logger it asks for.
func prepare(cmd *cobra.Command) (*config, *zap.Logger, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(cmd, file)
	if err != nil {
		return nil, nil, err
	}
	log := zap.NewNop()
	if cfg.Verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}
	synth.SetLogger(log)
	return cfg, log, nil
}

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the members of the synthesized type and its auxiliary types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s, err := synthesize(cfg, log)
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), s)
		},
	}
}

func dump(w io.Writer, s *sample) error {
	styled := isTerminal(w)
	heading := func(text string) {
		if styled {
			text = titleStyle.Render(text)
		}
		fmt.Fprintln(w, text)
	}

	heading(fmt.Sprintf("%s (%d bytes)", s.name.InternalName(), len(s.class)))
	if _, err := io.WriteString(w, s.listing); err != nil {
		return err
	}
	for _, aux := range s.auxiliaries {
		cf, err := classfile.Parse(aux.Bytes)
		if err != nil {
			return fmt.Errorf("auxiliary %s: %w", aux.Type.InternalName(), err)
		}
		fmt.Fprintln(w)
		heading(fmt.Sprintf("%s (%d bytes)", aux.Type.InternalName(), len(aux.Bytes)))
		if err := classfile.NewPrinter(w).PrintClass(cf); err != nil {
			return err
		}
	}
	return nil
}

func newWriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the synthesized type and its auxiliary types as class files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := prepare(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			s, err := synthesize(cfg, log)
			if err != nil {
				return err
			}
			paths, err := writeClasses(cfg.Output, s)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output directory (default .)")
	return cmd
}

// writeClasses stores each class under dir at the path of its internal name.
func writeClasses(dir string, s *sample) ([]string, error) {
	files := []struct {
		name string
		data []byte
	}{{s.name.InternalName(), s.class}}
	for _, aux := range s.auxiliaries {
		files = append(files, struct {
			name string
			data []byte
		}{aux.Type.InternalName(), aux.Bytes})
	}

	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.name)+".class")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.class>",
		Short: "Print the members of an existing class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := inspect(args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), listing)
			return err
		},
	}
}

func inspect(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	cf, err := classfile.Parse(data)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	var buf bytes.Buffer
	if err := classfile.NewPrinter(&buf).PrintClass(cf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file.class]",
		Short: "Browse the synthesized type, or a class file, interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return fmt.Errorf("browse needs an interactive terminal")
			}
			if len(args) == 1 {
				listing, err := inspect(args[0])
				if err != nil {
					return err
				}
				return runBrowse(args[0], listing)
			}

			cfg, _, err := prepare(cmd)
			if err != nil {
				return err
			}
			// The development logger would draw over the alternate screen.
			s, err := synthesize(cfg, zap.NewNop())
			if err != nil {
				return err
			}
			return runBrowse(s.name.InternalName(), s.listing)
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
