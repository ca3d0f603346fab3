package cliapp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/coulombo/internal/cluster"
)

func TestParseFlagsRequiresAtoms(t *testing.T) {
	_, _, err := ParseFlags("integrals", []string{"--orbitals=2", "h1.txt"})
	if err == nil {
		t.Fatal("expected an error when --atoms is omitted")
	}
}

func TestParseFlagsDefaultsSkipLinesToZeroWhenOmitted(t *testing.T) {
	cfg, rest, err := ParseFlags("integrals", []string{"--atoms=atoms.txt", "h1.txt", "e1.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SkipLines != 0 {
		t.Fatalf("SkipLines = %d, want 0", cfg.SkipLines)
	}
	if len(rest) != 2 || rest[0] != "h1.txt" || rest[1] != "e1.txt" {
		t.Fatalf("unexpected positional args: %v", rest)
	}
}

func TestParseFlagsRejectsExplicitZeroSkipLines(t *testing.T) {
	_, _, err := ParseFlags("integrals", []string{"--atoms=atoms.txt", "--skip-lines=0", "h1.txt"})
	if err == nil {
		t.Fatal("expected an error for an explicit --skip-lines=0")
	}
}

func TestParseFlagsAcceptsExplicitPositiveSkipLines(t *testing.T) {
	cfg, _, err := ParseFlags("integrals", []string{"--atoms=atoms.txt", "--skip-lines=3", "h1.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SkipLines != 3 {
		t.Fatalf("SkipLines = %d, want 3", cfg.SkipLines)
	}
}

func TestParseFlagsRejectsNonPositiveRanks(t *testing.T) {
	_, _, err := ParseFlags("integrals", []string{"--atoms=atoms.txt", "--ranks=0", "h1.txt"})
	if err == nil {
		t.Fatal("expected an error for --ranks=0")
	}
}

func TestParseFlagsAppendsTrailingSlashToOutputDir(t *testing.T) {
	cfg, _, err := ParseFlags("integrals", []string{"--atoms=atoms.txt", "--output-dir=out", "h1.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "out/" {
		t.Fatalf("OutputDir = %q, want %q", cfg.OutputDir, "out/")
	}
}

func TestClassifyInputFilesCountsHolesAndElectrons(t *testing.T) {
	holeCount, electronCount, err := classifyInputFiles([]string{"h1.txt", "h2.txt", "e1.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if holeCount != 2 || electronCount != 1 {
		t.Fatalf("got (%d, %d), want (2, 1)", holeCount, electronCount)
	}
}

func TestClassifyInputFilesRejectsElectronBeforeHole(t *testing.T) {
	_, _, err := classifyInputFiles([]string{"e1.txt", "h1.txt"})
	if err == nil {
		t.Fatal("expected an error when an electron state precedes a hole state")
	}
}

func TestClassifyInputFilesRejectsUnknownPrefix(t *testing.T) {
	_, _, err := classifyInputFiles([]string{"x1.txt"})
	if err == nil {
		t.Fatal("expected an error for an unrecognized state file prefix")
	}
}

func TestBuildInteractionDefaultsToSimple(t *testing.T) {
	cfg := &Config{Dielectric: 4.2}
	d, err := buildInteraction(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Dielectric(100); got != 4.2 {
		t.Fatalf("Dielectric(100) = %v, want 4.2", got)
	}
}

func TestBuildInteractionRejectsThomasFermiWithLowDielectric(t *testing.T) {
	cfg := &Config{Dielectric: 1, TFLattice: 5}
	if _, err := buildInteraction(cfg); err == nil {
		t.Fatal("expected an error: Thomas-Fermi-Resta requires dielectric >1")
	}
}

func TestBuildInteractionUsesThomasFermiWhenLatticeSet(t *testing.T) {
	cfg := &Config{Dielectric: 5, TFLattice: 2.5}
	d, err := buildInteraction(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if d.Dielectric(0) == d.Dielectric(1000) {
		t.Fatal("expected a position-dependent dielectric from the Thomas-Fermi-Resta model")
	}
}

func TestExportIntegralTypeRemapsHoleIndicesDescending(t *testing.T) {
	dir := t.TempDir()
	index := map[integralSpec]complex128{
		{2, 2, 2, 2}: complex(1.5, -0.5), // hole #1 remaps to holeCount+1-1 = 2
	}
	if err := exportIntegralType(dir+string(filepath.Separator), index, 2, 0, 0, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "hhhh.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := " 1  1  1  1    1.50000000000000 -0.50000000000000\n"
	if string(data) != want {
		t.Fatalf("hhhh.txt = %q, want %q", string(data), want)
	}
}

func TestExportIntegralTypeSkipsFileWhenNothingMatches(t *testing.T) {
	dir := t.TempDir()
	if err := exportIntegralType(dir+string(filepath.Separator), map[integralSpec]complex128{}, 1, 1, 0, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "hhhh.txt")); !os.IsNotExist(err) {
		t.Fatal("expected no hhhh.txt to be created when no integral matches")
	}
}

func writeTestAtoms(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "atoms.txt")
	content := "0.0 0.0 0.0\n1.0 0.0 0.0\n2.0 0.0 0.0\n3.0 0.0 0.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeTestCoefficients(t *testing.T, path string) {
	t.Helper()
	content := "1 0\n1 0\n1 0\n1 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunPotentialsWritesOneFilePerInput(t *testing.T) {
	dir := t.TempDir()
	atomsPath := writeTestAtoms(t, dir)

	ePath := filepath.Join(dir, "e1.txt")
	writeTestCoefficients(t, ePath)

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		AtomsPath:    atomsPath,
		OrbitalCount: 1,
		Dielectric:   1,
		OutputDir:    outDir + "/",
	}

	w := cluster.NewWorld(1, 1)
	if err := w.Run(func(r *cluster.Rank) error {
		return RunPotentials(r, cfg, []string{ePath})
	}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "potential-e1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected a non-empty potential-e1.txt file")
	}
}

func TestRunIntegralsExportsRequestedPairFile(t *testing.T) {
	dir := t.TempDir()
	atomsPath := writeTestAtoms(t, dir)

	hPath := filepath.Join(dir, "h1.txt")
	ePath := filepath.Join(dir, "e1.txt")
	writeTestCoefficients(t, hPath)
	writeTestCoefficients(t, ePath)

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		AtomsPath:    atomsPath,
		OrbitalCount: 1,
		Dielectric:   1,
		Integrals:    "****",
		OutputDir:    outDir + "/",
	}

	w := cluster.NewWorld(1, 1)
	if err := w.Run(func(r *cluster.Rank) error {
		return RunIntegrals(r, cfg, []string{hPath, ePath})
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "hhhh.txt")); err != nil {
		t.Fatalf("expected hhhh.txt to be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "eeee.txt")); err != nil {
		t.Fatalf("expected eeee.txt to be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "hhee.txt")); err != nil {
		t.Fatalf("expected hhee.txt to be written: %v", err)
	}
}
