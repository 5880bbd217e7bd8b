package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecostock/ecostock/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStores(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader()

	t.Run("valid file", func(t *testing.T) {
		path := writeFile(t, dir, "stores.csv",
			"store_id,name,type,lat,lon,address\n"+
				"NYC_SOHO,SoHo Flagship,Flagship,40.7233,-74.0030,500 Broadway\n"+
				"NYC_BK,Brooklyn Outlet,Outlet,40.6500,-73.9500,1000 Flatbush Ave\n")

		stores, err := loader.LoadStores(path)
		require.NoError(t, err)
		require.Len(t, stores, 2)
		assert.Equal(t, entities.StoreID("NYC_SOHO"), stores[0].ID)
		assert.Equal(t, entities.Outlet, stores[1].Type)
		assert.InDelta(t, 40.65, stores[1].Location.Lat, 0.001)
	})

	t.Run("bad store type", func(t *testing.T) {
		path := writeFile(t, dir, "bad_type.csv",
			"store_id,name,type,lat,lon,address\nNYC_SOHO,SoHo,Kiosk,40.7,-74.0,addr\n")
		_, err := loader.LoadStores(path)
		assert.ErrorContains(t, err, "row 2")
	})

	t.Run("bad latitude", func(t *testing.T) {
		path := writeFile(t, dir, "bad_lat.csv",
			"store_id,name,type,lat,lon,address\nNYC_SOHO,SoHo,Flagship,north,-74.0,addr\n")
		_, err := loader.LoadStores(path)
		assert.ErrorContains(t, err, "invalid lat")
	})

	t.Run("header mismatch", func(t *testing.T) {
		path := writeFile(t, dir, "bad_header.csv",
			"id,name,type,lat,lon,address\nNYC_SOHO,SoHo,Flagship,40.7,-74.0,addr\n")
		_, err := loader.LoadStores(path)
		assert.ErrorContains(t, err, "header mismatch")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.LoadStores(filepath.Join(dir, "absent.csv"))
		assert.ErrorContains(t, err, "failed to open")
	})
}

func TestLoadProducts(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader()

	t.Run("valid file", func(t *testing.T) {
		path := writeFile(t, dir, "products.csv",
			"product_id,name,category,size,unit_price,unit_weight_kg\n"+
				"PARKA,Expedition Parka,Outerwear,M,189.00,1.8\n")

		products, err := loader.LoadProducts(path)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, entities.Outerwear, products[0].Category)
		assert.Equal(t, "189", products[0].UnitPrice.String())
	})

	t.Run("unknown category", func(t *testing.T) {
		path := writeFile(t, dir, "bad_category.csv",
			"product_id,name,category,size,unit_price,unit_weight_kg\n"+
				"PARKA,Parka,Gadgets,M,189.00,1.8\n")
		_, err := loader.LoadProducts(path)
		assert.ErrorContains(t, err, "unknown category")
	})

	t.Run("bad price", func(t *testing.T) {
		path := writeFile(t, dir, "bad_price.csv",
			"product_id,name,category,size,unit_price,unit_weight_kg\n"+
				"PARKA,Parka,Outerwear,M,cheap,1.8\n")
		_, err := loader.LoadProducts(path)
		assert.ErrorContains(t, err, "invalid unit_price")
	})
}

func TestLoadInventory(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader()

	path := writeFile(t, dir, "inventory.csv",
		"store_id,product_id,quantity\nNYC_SOHO,PARKA,60\nNYC_BK,PARKA,4\n")
	records, err := loader.LoadInventory(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, entities.Quantity(60), records[0].Quantity)

	bad := writeFile(t, dir, "bad_qty.csv",
		"store_id,product_id,quantity\nNYC_SOHO,PARKA,-3\n")
	_, err = loader.LoadInventory(bad)
	assert.ErrorContains(t, err, "row 2")
}

func TestLoadSales(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader()

	path := writeFile(t, dir, "sales.csv",
		"store_id,product_id,quantity,timestamp\n"+
			"NYC_BK,PARKA,2,2026-08-20T14:30:00Z\n")
	events, err := loader.LoadSales(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entities.Quantity(2), events[0].Quantity)
	assert.Equal(t, 2026, events[0].Timestamp.Year())

	bad := writeFile(t, dir, "bad_ts.csv",
		"store_id,product_id,quantity,timestamp\nNYC_BK,PARKA,2,yesterday\n")
	_, err = loader.LoadSales(bad)
	assert.ErrorContains(t, err, "invalid timestamp")
}
