// Package output renders engine reports for the CLI.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecostock/ecostock/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Report bundles a network snapshot for rendering
type Report struct {
	Stores          []dto.StoreSummary       `json:"stores"`
	Inventory       []dto.InventoryView      `json:"inventory"`
	Recommendations []dto.RecommendationView `json:"recommendations"`
}

// Generate creates output in the specified format
func Generate(report *Report, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *Report, config Config) error {
	fmt.Printf("📊 Network Snapshot\n")
	fmt.Printf("===================\n\n")

	if len(report.Stores) > 0 {
		fmt.Printf("🏬 Stores:\n")
		fmt.Printf("%-12s %-24s %-10s %-12s\n", "Store ID", "Name", "Type", "Velocity/wk")
		fmt.Printf("%-12s %-24s %-10s %-12s\n", "------------", "------------------------", "----------", "------------")
		for _, store := range report.Stores {
			fmt.Printf("%-12s %-24s %-10s %-12.1f\n",
				store.StoreID, store.Name, store.Type, store.TotalVelocity)
		}
		fmt.Println()
	}

	if config.Verbose && len(report.Inventory) > 0 {
		fmt.Printf("📦 Inventory:\n")
		fmt.Printf("%-12s %-16s %-8s %-12s %-10s\n", "Store", "Product", "Qty", "Velocity/wk", "Status")
		fmt.Printf("%-12s %-16s %-8s %-12s %-10s\n", "------------", "----------------", "--------", "------------", "----------")
		for _, item := range report.Inventory {
			fmt.Printf("%-12s %-16s %-8d %-12.1f %-10s\n",
				item.StoreID, item.ProductID, item.Quantity, item.VelocityWk, item.Status)
		}
		fmt.Println()
	}

	if len(report.Recommendations) > 0 {
		fmt.Printf("♻️  Recommendations:\n")
		fmt.Printf("%-16s %-12s %-12s %-6s %-14s %-10s %-10s\n",
			"Product", "Source", "Dest", "Qty", "Method", "State", "CO₂ (kg)")
		fmt.Printf("%-16s %-12s %-12s %-6s %-14s %-10s %-10s\n",
			"----------------", "------------", "------------", "------", "--------------", "----------", "----------")
		for _, rec := range report.Recommendations {
			source := string(rec.SourceStoreID)
			if source == "" {
				source = "warehouse"
			}
			fmt.Printf("%-16s %-12s %-12s %-6d %-14s %-10s %-10s\n",
				rec.ProductID, source, rec.DestStoreID, rec.Quantity,
				rec.Method, rec.State, rec.CO2SavedKg.StringFixed(2))
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput writes the report as JSON
func generateJSONOutput(report *Report, config Config) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, "report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if config.Verbose {
		fmt.Printf("📄 Report written to %s\n", path)
	}
	return nil
}

// generateCSVOutput writes the recommendation list as CSV
func generateCSVOutput(report *Report, config Config) error {
	var out *os.File
	if config.OutputDir == "" {
		out = os.Stdout
	} else {
		if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path := filepath.Join(config.OutputDir, "recommendations.csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()
		out = f
		if config.Verbose {
			fmt.Printf("📄 Recommendations written to %s\n", path)
		}
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"product_id", "source_store_id", "dest_store_id", "quantity", "method", "state", "co2_saved_kg"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range report.Recommendations {
		row := []string{
			string(rec.ProductID),
			string(rec.SourceStoreID),
			string(rec.DestStoreID),
			fmt.Sprintf("%d", rec.Quantity),
			rec.Method,
			rec.State,
			rec.CO2SavedKg.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}
