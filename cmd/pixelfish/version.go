package main

import (
	"fmt"
	"strings"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	program := "pixelfish"
	if v.r != nil {
		program = v.r.program
	}
	line := fmt.Sprintf("%s version %s", program, version)
	if c := strings.TrimSpace(commit); c != "" {
		line += " (" + c
		if d := strings.TrimSpace(date); d != "" {
			line += ", " + d
		}
		line += ")"
	}
	fmt.Println(line)
	return nil
}
