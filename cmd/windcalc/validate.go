package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/wind-analytics-service/internal/catalog"
	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

// errValidationFailed is returned after the report is printed so cobra exits
// non-zero without repeating the details.
var errValidationFailed = errors.New("dataset validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func runValidate(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading dataset file: %w", err)
	}

	var phases []*phase
	defer func() { printPhases(w, phases) }()

	// Phase 1: decode.
	decode := &phase{name: "decode"}
	phases = append(phases, decode)
	var doc catalog.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		decode.errorf("%v", err)
		return errValidationFailed
	}
	if len(doc.States) == 0 {
		decode.errorf("no states defined")
	}

	// Phase 2: integrity (tier groupings, duplicates, coordinates).
	integrity := &phase{name: "integrity"}
	phases = append(phases, integrity)
	dataset, err := doc.Dataset()
	if err != nil {
		integrity.errorf("%v", err)
		return errValidationFailed
	}

	// Phase 3: every state's defaults are accepted by the calculator and
	// produce finite metrics.
	economics := &phase{name: "economics"}
	phases = append(phases, economics)
	for _, name := range dataset.Names() {
		params, err := dataset.DefaultsFor(name)
		if err != nil {
			economics.errorf("%s: %v", name, err)
			continue
		}
		m, err := domain.ComputeChecked(params)
		if err != nil {
			for _, re := range domain.RangeErrors(err) {
				economics.errorf("%s: %v", name, re)
			}
			continue
		}
		if math.IsNaN(m.ROIPercent) || math.IsInf(m.ROIPercent, 0) {
			economics.errorf("%s: non-finite ROI", name)
		}
	}

	if !decode.passed() || !economics.passed() {
		return errValidationFailed
	}
	return nil
}

func printPhases(w io.Writer, phases []*phase) {
	valid := true
	for _, p := range phases {
		if p.passed() {
			fmt.Fprintf(w, "PASS  %s\n", p.name)
			continue
		}
		valid = false
		fmt.Fprintf(w, "FAIL  %s (%d)\n", p.name, len(p.errors))
		for _, e := range p.errors {
			fmt.Fprintf(w, "        %s\n", e)
		}
	}
	if valid {
		fmt.Fprintln(w, "Result: VALID")
	} else {
		fmt.Fprintln(w, "Result: INVALID")
	}
}
