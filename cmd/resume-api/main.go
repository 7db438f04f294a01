// Package main is the entry point for the Resume API Service.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	resume "github.com/Anurag02012004/ai-resume-project/internal/resume"
)

func main() {
	resume.NewApp().Run()
}
