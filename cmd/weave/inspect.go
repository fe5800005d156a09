package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/weaver/classfile"
)

func newInspectCommand() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "inspect <class-file>",
		Short: "Decode a class file and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cls, err := classfile.Parse(data)
			if err != nil {
				return err
			}
			if dump {
				spew.Dump(cls)
				return nil
			}
			printClass(cls)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the full decoded structure")
	return cmd
}

func printClass(cls *classfile.Class) {
	heading := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	heading.Printf("class %s\n", cls.Name)
	if cls.Super != "" {
		fmt.Printf("  super: %s\n", cls.Super)
	}
	if cls.SourceFile != "" {
		fmt.Printf("  source: %s\n", cls.SourceFile)
	}
	for _, f := range cls.Fields {
		fmt.Printf("  field %s %s\n", f.Name, f.Descriptor)
	}
	for _, m := range cls.Methods {
		fmt.Printf("  method %s%s (%d instructions)\n", m.Name, m.Descriptor, len(m.Code))
		for _, instr := range m.Code {
			line := ""
			if instr.Line != 0 {
				line = fmt.Sprintf("  ; line %d", instr.Line)
			}
			fmt.Printf("    %-18s %s%s\n",
				instr.Opcode.String(),
				strings.Join(instr.Operands, " "),
				dim.Sprint(line))
		}
	}
}
