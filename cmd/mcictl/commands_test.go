package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const referenceCSV = `metal,route,material_mass_kg,energy_MJ_per_kg,recycled_content_frac,product_lifetime_years,MCI_percent
Steel,Primary,1,30,0.1,10,30
Steel,Secondary,1,12,0.9,25,70
Copper,Primary,1,40,0.25,15,45
Copper,Secondary,1,18,0.25,30,72
`

func testOptions(t *testing.T) *engineOptions {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.csv")
	if err := os.WriteFile(path, []byte(referenceCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return &engineOptions{data: path, clusters: 2}
}

func TestReadFields(t *testing.T) {
	got, err := readFields(nil, `{"energy_MJ_per_kg": 20}`)
	if err != nil || got["energy_MJ_per_kg"] != 20.0 {
		t.Errorf("inline = %v, %v", got, err)
	}
	got, err = readFields(strings.NewReader(`{"metal": "Steel"}`), "-")
	if err != nil || got["metal"] != "Steel" {
		t.Errorf("stdin = %v, %v", got, err)
	}
	got, err = readFields(nil, "")
	if err != nil || len(got) != 0 {
		t.Errorf("empty = %v, %v", got, err)
	}
	if _, err := readFields(strings.NewReader(`[1, 2]`), "-"); err == nil {
		t.Error("array input accepted")
	}
}

func TestRunAnalyze_JSON(t *testing.T) {
	engine, err := testOptions(t).build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var buf bytes.Buffer
	if err := runAnalyze(context.Background(), engine, map[string]any{"recycled_content_frac": 0.1}, "", "json", "", &buf); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out["ideal_input"]; !ok {
		t.Errorf("output = %s", buf.String())
	}
}

func TestCommands_Output(t *testing.T) {
	opts := testOptions(t)

	var buf bytes.Buffer
	cmd := schemaCmd(opts)
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(buf.String(), "recycled_content_frac") || !strings.Contains(buf.String(), "beneficial") {
		t.Errorf("schema output = %s", buf.String())
	}

	buf.Reset()
	cmd = clustersCmd(opts)
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("clusters: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "clusters: 2") || !strings.Contains(buf.String(), "restart VI:") {
		t.Errorf("clusters output = %s", buf.String())
	}
}
