package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/axicon-labs/constable/pkg/constants"
)

// Example demonstrates using constants for file operations
func Example() {
	dir := filepath.Join(os.TempDir(), "constable-example")
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "registry.yaml")
	data := []byte("topology:\n  n_gen: {value: 3.0}\n")
	if err := os.WriteFile(file, data, constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_confidences shows the fixed tier confidences and their ordering
func Example_confidences() {
	fmt.Printf("exact:      %.2f\n", constants.ExactConfidence)
	fmt.Printf("scientific: %.2f\n", constants.ScientificConfidence)
	fmt.Printf("rounded:    %.2f\n", constants.RoundedConfidence)
	fmt.Printf("magnitude:  %.2f\n", constants.MagnitudeConfidence)
	fmt.Printf("threshold:  %.2f\n", constants.DefaultThreshold)

	// Output:
	// exact:      1.00
	// scientific: 0.95
	// rounded:    0.90
	// magnitude:  0.75
	// threshold:  0.85
}

// Example_scannerLimits shows the scanner bounds
func Example_scannerLimits() {
	fmt.Printf("Context radius: %d bytes\n", constants.ContextRadius)
	fmt.Printf("Max tokens per document: %d\n", constants.MaxTokensPerDocument)
	fmt.Printf("Small integer threshold: %d\n", constants.SmallIntegerThreshold)

	// Output:
	// Context radius: 40 bytes
	// Max tokens per document: 10000
	// Small integer threshold: 10
}

// Example_template demonstrates the default replacement construct
func Example_template() {
	construct := fmt.Sprintf(constants.DefaultReferenceTemplate, "topology.chi_eff")
	fmt.Println(construct)

	// Output:
	// {{const:topology.chi_eff}}
}
