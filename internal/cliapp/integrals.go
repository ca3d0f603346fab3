package cliapp

import (
	"fmt"
	"math/cmplx"
	"os"
	"path/filepath"

	"github.com/cwbudde/coulombo/internal/cluster"
	"github.com/cwbudde/coulombo/internal/convengine"
	"github.com/cwbudde/coulombo/internal/functions"
	"github.com/cwbudde/coulombo/internal/kernel"
	"github.com/cwbudde/coulombo/internal/pattern"
	"github.com/cwbudde/coulombo/internal/planner"
)

// integralSpec is a 4-tuple of 1-based state indices, in the "hole
// states first" numbering the export step below expects.
type integralSpec [4]int

func classifyInputFiles(inputPaths []string) (holeCount, electronCount int, err error) {
	for _, path := range inputPaths {
		basename := filepath.Base(path)
		switch {
		case len(basename) > 0 && basename[0] == 'h':
			if electronCount > 0 {
				return 0, 0, fmt.Errorf("cliapp: hole states must appear before electron states")
			}
			holeCount++
		case len(basename) > 0 && basename[0] == 'e':
			electronCount++
		default:
			return 0, 0, fmt.Errorf("cliapp: invalid state file name: %s", path)
		}
	}
	return holeCount, electronCount, nil
}

func buildInteraction(cfg *Config) (kernel.Dielectric, error) {
	if cfg.TFLattice > 0 {
		if !(cfg.Dielectric > 1) {
			return nil, fmt.Errorf("cliapp: dielectric constant must be >1 to use Thomas-Fermi model")
		}
		return kernel.NewThomasFermiResta(cfg.Dielectric, cfg.TFLattice)
	}
	return kernel.Simple{Value: cfg.Dielectric}, nil
}

// RunIntegrals computes every requested Coulomb/exchange integral
// across the given tight-binding state files and exports the 16
// hole/electron-typed result files, mirroring original_source/coulombo.cpp.
func RunIntegrals(rank *cluster.Rank, cfg *Config, inputPaths []string) error {
	var timer Timer
	timer.Start("reading atom positions")

	holeCount, electronCount, err := classifyInputFiles(inputPaths)
	if err != nil {
		return err
	}

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

	timer.Start("preparing plan")
	inputCount := len(inputPaths)

	pat, err := pattern.New(cfg.Integrals)
	if err != nil {
		return err
	}

	products := collection.CreateProducts()

	var master *planner.MasterPlanner
	if rank.IsRoot() {
		master = planner.NewMasterPlanner(len(products))
	}

	var specs []integralSpec
	if rank.IsRoot() {
		for i1 := 1; i1 <= inputCount; i1++ {
			for i2 := 1; i2 <= inputCount; i2++ {
				for i3 := 1; i3 <= inputCount; i3++ {
					for i4 := 1; i4 <= inputCount; i4++ {
						if pat.Match(i1, i2, i3, i4) {
							if err := master.AddIntegral(i1, i2, i3, i4); err != nil {
								return err
							}
							specs = append(specs, integralSpec{i1, i2, i3, i4})
						}
					}
				}
			}
		}
		if err := master.ComputePlan(); err != nil {
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

	timer.Start("computing requested integrals")

	integralValues := make([]complex128, len(specs))
	lastLeftProduct := -1
	lastRightProduct := -1
	lastRightConjugate := false
	var valueLast complex128

	for {
		step, more, err := planner.GetNextStep(rank, master)
		if err != nil {
			return err
		}
		if !more {
			break
		}

		if step.Left.Index != lastLeftProduct {
			products[step.Left.Index].Map(engine.Input, false)
			if err := engine.Prepare(); err != nil {
				return err
			}
			lastLeftProduct = step.Left.Index
			lastRightProduct = -1
		}

		rightConjugate := step.Left.Conjugate != step.Right.Conjugate
		if step.Right.Index != lastRightProduct || rightConjugate != lastRightConjugate {
			products[step.Right.Index].Map(engine.Input, rightConjugate)
			lastRightProduct = step.Right.Index
			lastRightConjugate = rightConjugate
			value, _ := engine.Calculate()
			valueLast = value
		}

		if rank.IsRoot() {
			if step.Left.Conjugate {
				integralValues[step.ID] = cmplx.Conj(valueLast)
			} else {
				integralValues[step.ID] = valueLast
			}
		}
	}

	timer.Start("exporting results")
	if rank.IsRoot() {
		if err := exportIntegrals(cfg.OutputDir, specs, integralValues, holeCount, electronCount); err != nil {
			return err
		}
	}
	timer.Finish()
	return nil
}

// exportIntegrals writes the 16 hole/electron-typed result files, one
// per (h/e)^4 type combination that has at least one matching integral.
func exportIntegrals(outputDir string, specs []integralSpec, values []complex128, holeCount, electronCount int) error {
	index := make(map[integralSpec]complex128, len(specs))
	for i, spec := range specs {
		index[spec] = values[i]
	}

	for ti := 0; ti < 2; ti++ {
		for tj := 0; tj < 2; tj++ {
			for tk := 0; tk < 2; tk++ {
				for tl := 0; tl < 2; tl++ {
					if err := exportIntegralType(outputDir, index, holeCount, electronCount, ti, tj, tk, tl); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func exportIntegralType(outputDir string, index map[integralSpec]complex128, holeCount, electronCount, ti, tj, tk, tl int) error {
	typeChar := func(t int) byte {
		if t != 0 {
			return 'e'
		}
		return 'h'
	}
	core := string([]byte{typeChar(ti), typeChar(tj), typeChar(tk), typeChar(tl)})

	countFor := func(t int) int {
		if t != 0 {
			return electronCount
		}
		return holeCount
	}
	remap := func(t, n int) int {
		if t != 0 {
			return holeCount + n
		}
		return holeCount + 1 - n
	}

	ni, nj, nk, nl := countFor(ti), countFor(tj), countFor(tk), countFor(tl)

	var file *os.File
	defer func() {
		if file != nil {
			file.Close()
		}
	}()

	for i := 1; i <= ni; i++ {
		for j := 1; j <= nj; j++ {
			for k := 1; k <= nk; k++ {
				for l := 1; l <= nl; l++ {
					spec := integralSpec{remap(ti, i), remap(tj, j), remap(tk, k), remap(tl, l)}
					value, found := index[spec]
					if !found {
						continue
					}
					if file == nil {
						var err error
						file, err = os.Create(outputDir + core + ".txt")
						if err != nil {
							return fmt.Errorf("cliapp: %w", err)
						}
					}
					if _, err := fmt.Fprintf(file, "%2d %2d %2d %2d   %17.14f %17.14f\n",
						i, j, k, l, real(value), imag(value)); err != nil {
						return fmt.Errorf("cliapp: %w", err)
					}
				}
			}
		}
	}
	return nil
}
