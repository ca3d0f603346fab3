// Command potentials computes the per-atom on-site Coulomb potential
// generated by each tight-binding state on a large distributed grid.
//
// Usage:
//
//	potentials [flags] state-file ...
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/coulombo/internal/cliapp"
	"github.com/cwbudde/coulombo/internal/cluster"
)

func main() {
	cfg, inputPaths, err := cliapp.ParseFlags("potentials", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		usage()
		os.Exit(1)
	}
	if len(inputPaths) == 0 {
		usage()
		os.Exit(1)
	}

	world := cluster.NewWorld(cfg.RankCount, cfg.ThreadsPerNode)
	if err := world.Run(func(rank *cluster.Rank) error {
		return cliapp.RunPotentials(rank, cfg, inputPaths)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Coulombo potentials: computes per-atom on-site Coulomb potentials.\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n  potentials [flags] state-file ...\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	fmt.Fprintf(os.Stderr, "  --atoms=PATH           path to file with atoms' positions\n")
	fmt.Fprintf(os.Stderr, "  --dielectric=VALUE     dielectric constant, default: 1\n")
	fmt.Fprintf(os.Stderr, "  --onsite=ENERGY        energy for on-site contribution, default: 0 (eV)\n")
	fmt.Fprintf(os.Stderr, "  --orbitals=N           number of (spin-)orbitals per atom, default: 20\n")
	fmt.Fprintf(os.Stderr, "  --output-dir=DIR       directory for output files, default: current\n")
	fmt.Fprintf(os.Stderr, "  --ranks=N              number of simulated cluster ranks, default: 1\n")
	fmt.Fprintf(os.Stderr, "  --skip-lines=N         header lines to skip in each LCAO file, default: 0\n")
	fmt.Fprintf(os.Stderr, "  --threads-per-node=N   worker threads per node, default: 1\n")
	fmt.Fprintf(os.Stderr, "  --tf-lattice=VALUE     lattice constant (A) for Thomas-Fermi-Resta model\n")
}
