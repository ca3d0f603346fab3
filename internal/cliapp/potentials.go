package cliapp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/convengine"
	"github.com/cwbudde/coulombo/internal/functions"
	"github.com/cwbudde/coulombo/internal/kernel"
)

// RunPotentials computes, for every input state file, the on-site
// potential V(r) it generates and writes one per-atom real-part value
// per line to <output-dir>/potential-<basename>, mirroring
// original_source/potentials.cpp.
func RunPotentials(rank *cluster.Rank, cfg *Config, inputPaths []string) error {
	var timer Timer
	timer.Start("reading atom positions")

	collection, err := functions.NewCollection(rank, cfg.AtomsPath, cfg.OrbitalCount, cfg.SkipLines)
	if err != nil {
		return err
	}

	timer.Start("reading wavefunctions")
	for _, path := range inputPaths {
		if err := collection.AppendFile(path, filepath.Base(path)); err != nil {
			return err
		}
	}

	timer.Start("initializing calculator")

	dimension := collection.PaddedDimension()
	engine, err := convengine.NewEngine(rank, dimension)
	if err != nil {
		return err
	}

	stepValues := collection.StepValues()
	interaction, err := buildInteraction(cfg)
	if err != nil {
		return err
	}
	if err := engine.Initialize(interaction, kernel.Step{X: stepValues.X, Y: stepValues.Y, Z: stepValues.Z}, cfg.Onsite); err != nil {
		return err
	}

	timer.Start("computing all quasi-potentials")

	products := collection.CreateSelfProducts()
	fileNames := collection.FileNames()
	for i, product := range products {
		product.Map(engine.Input, false)
		if err := engine.Prepare(); err != nil {
			return err
		}

		values := collection.ExtractAtomCellValues(engine.Potential())
		if rank.IsRoot() {
			if err := writePotentialFile(cfg.OutputDir, fileNames[i], values); err != nil {
				return err
			}
		}
	}

	timer.Finish()
	return nil
}

func writePotentialFile(outputDir, fileName string, values []complex128) error {
	path := outputDir + "potential-" + fileName
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cliapp: cannot open file %s for writing: %w", path, err)
	}
	defer file.Close()

	for _, v := range values {
		if _, err := fmt.Fprintf(file, "%.12e\n", real(v)); err != nil {
			return fmt.Errorf("cliapp: %w", err)
		}
	}
	return nil
}
