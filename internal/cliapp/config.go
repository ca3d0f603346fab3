// Package cliapp wires the domain packages into the two command-line
// personalities the CLI layer exposes: integrals (full Coulomb/exchange
// matrix elements) and potentials (per-atom on-site potentials).
// Grounded on original_source/coulombo.cpp and original_source/potentials.cpp.
package cliapp

import (
	"flag"
	"fmt"
)

// Config holds every setting shared by both CLI personalities, parsed
// from command-line flags in the teacher's stdlib-flag style (see
// cmd/wininfo/main.go).
type Config struct {
	AtomsPath      string
	OrbitalCount   int
	SkipLines      int
	Dielectric     float64
	Onsite         float64
	TFLattice      float64 // 0 means "model not applied"
	Integrals      string  // pattern grammar description; "****" matches everything
	OutputDir      string
	ThreadsPerNode int

	// RankCount is this run's simulated-cluster size. The original
	// implementation reads its MPI rank count from the `mpirun -np`
	// launcher rather than a program flag; since this module simulates
	// ranks as goroutines within one process (see internal/cluster),
	// the rank count has to come from somewhere, so it is exposed as a
	// flag instead of an external launcher argument.
	RankCount int
}

// ParseFlags parses args (excluding the program name) against a fresh
// flag.FlagSet and returns the resulting Config plus the positional
// input-file arguments.
func ParseFlags(name string, args []string) (*Config, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	atoms := fs.String("atoms", "", "path to file with atoms' positions")
	orbitals := fs.Int("orbitals", 20, "number of (spin-)orbitals per atom")
	skipLines := fs.Int("skip-lines", 0, "number of lines to be skipped on top of each LCAO file")
	dielectric := fs.Float64("dielectric", 1.0, "dielectric constant")
	onsite := fs.Float64("onsite", 0.0, "energy for on-site contribution (eV)")
	tfLattice := fs.Float64("tf-lattice", 0, "lattice constant (A) for Thomas-Fermi-Resta model; unset disables it")
	integrals := fs.String("integrals", "****", "comma-separated list of integrals to compute (eg. \"eeee,hhhh,ehhe,eheh\")")
	outputDir := fs.String("output-dir", "", "directory for output files")
	threadsPerNode := fs.Int("threads-per-node", 1, "number of worker threads per node")
	rankCount := fs.Int("ranks", 1, "number of simulated cluster ranks")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	var skipLinesSet bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "skip-lines" {
			skipLinesSet = true
		}
	})

	if *orbitals <= 0 {
		return nil, nil, fmt.Errorf("cliapp: invalid value for orbitals")
	}
	if skipLinesSet && *skipLines <= 0 {
		return nil, nil, fmt.Errorf("cliapp: invalid value for skip-lines")
	}
	if *threadsPerNode <= 0 {
		return nil, nil, fmt.Errorf("cliapp: invalid value for threads-per-node")
	}
	if *rankCount <= 0 {
		return nil, nil, fmt.Errorf("cliapp: invalid value for ranks")
	}
	if *atoms == "" {
		return nil, nil, fmt.Errorf("cliapp: --atoms is required")
	}

	dir := *outputDir
	if dir != "" {
		dir += "/"
	}

	cfg := &Config{
		AtomsPath:      *atoms,
		OrbitalCount:   *orbitals,
		SkipLines:      *skipLines,
		Dielectric:     *dielectric,
		Onsite:         *onsite,
		TFLattice:      *tfLattice,
		Integrals:      *integrals,
		OutputDir:      dir,
		ThreadsPerNode: *threadsPerNode,
		RankCount:      *rankCount,
	}
	return cfg, fs.Args(), nil
}
