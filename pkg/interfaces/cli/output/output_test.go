package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecostock/ecostock/pkg/application/dto"
)

func sampleReport() *Report {
	return &Report{
		Stores: []dto.StoreSummary{
			{StoreID: "STORE_A", Name: "Store A", Type: "Flagship", Lat: 40.71, Lon: -74.00, TotalVelocity: 18.1},
		},
		Inventory: []dto.InventoryView{
			{StoreID: "STORE_A", ProductID: "PARKA", Quantity: 60, Status: "DeadStock", VelocityWk: 0.1},
		},
		Recommendations: []dto.RecommendationView{
			{
				ID:            "rec-1",
				ProductID:     "PARKA",
				SourceStoreID: "STORE_A",
				DestStoreID:   "STORE_B",
				Quantity:      10,
				CO2SavedKg:    decimal.RequireFromString("42.5"),
				Method:        "StoreTransfer",
				State:         "Pending",
			},
			{
				ID:          "rec-2",
				ProductID:   "SNEAKERS",
				DestStoreID: "STORE_B",
				Quantity:    4,
				CO2SavedKg:  decimal.Zero,
				Method:      "RestockOrder",
				State:       "Pending",
			},
		},
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	err := Generate(sampleReport(), Config{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestGenerateJSONWritesReportFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleReport(), Config{Format: "json", OutputDir: dir}))

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Recommendations, 2)
	assert.Equal(t, "rec-1", got.Recommendations[0].ID)
	assert.True(t, got.Recommendations[0].CO2SavedKg.Equal(decimal.RequireFromString("42.5")))
}

func TestGenerateCSVWritesRecommendations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleReport(), Config{Format: "csv", OutputDir: dir}))

	f, err := os.Open(filepath.Join(dir, "recommendations.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"product_id", "source_store_id", "dest_store_id", "quantity", "method", "state", "co2_saved_kg"}, rows[0])
	assert.Equal(t, []string{"PARKA", "STORE_A", "STORE_B", "10", "StoreTransfer", "Pending", "42.50"}, rows[1])
	// Restock orders have no source store.
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "0.00", rows[2][6])
}

func TestGenerateTextOutput(t *testing.T) {
	// Text goes to stdout; this only asserts it renders without error.
	require.NoError(t, Generate(sampleReport(), Config{Format: "text", Verbose: true}))
}
