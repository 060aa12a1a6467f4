package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comparanote/backend/internal/domain"
)

// parseNotebookFilter reads the listing filters from the query string.
// List-valued params accept comma-separated values, e.g.
// ?gpu_series=RTX 4060,RTX 4070&ram_size_gb=16,32&sort=price_asc
func parseNotebookFilter(c *gin.Context) (domain.NotebookFilter, error) {
	var filter domain.NotebookFilter
	var err error

	filter.CPUBrands = csvStrings(c.Query("cpu_brand"))
	filter.CPUIntelSeries = csvStrings(c.Query("cpu_intel_series"))
	filter.CPUAmdSeries = csvStrings(c.Query("cpu_amd_series"))
	filter.GPUBrands = csvStrings(c.Query("gpu_brand"))
	filter.GPUSeries = csvStrings(c.Query("gpu_series"))
	filter.ScreenPanelTypes = csvStrings(c.Query("screen_panel_type"))
	filter.KeyboardFeatures = csvStrings(c.Query("keyboard_type_feature"))
	filter.Sort = c.Query("sort")

	if filter.CPUIntelGeneration, err = csvInts(c.Query("cpu_intel_generation")); err != nil {
		return filter, fmt.Errorf("invalid cpu_intel_generation: %w", err)
	}
	if filter.CPUAmdGeneration, err = csvInts(c.Query("cpu_amd_generation")); err != nil {
		return filter, fmt.Errorf("invalid cpu_amd_generation: %w", err)
	}
	if filter.RAMSizeGB, err = csvInts(c.Query("ram_size_gb")); err != nil {
		return filter, fmt.Errorf("invalid ram_size_gb: %w", err)
	}
	if filter.StorageGB, err = csvInts(c.Query("storage_gb")); err != nil {
		return filter, fmt.Errorf("invalid storage_gb: %w", err)
	}
	if filter.ScreenHz, err = csvInts(c.Query("screen_hz")); err != nil {
		return filter, fmt.Errorf("invalid screen_hz: %w", err)
	}
	if filter.ScreenSizeInches, err = csvFloats(c.Query("screen_size_inches")); err != nil {
		return filter, fmt.Errorf("invalid screen_size_inches: %w", err)
	}

	if filter.CPUGHzMin, err = floatParam(c, "cpu_ghz_min"); err != nil {
		return filter, err
	}
	if filter.CPUGHzMax, err = floatParam(c, "cpu_ghz_max"); err != nil {
		return filter, err
	}
	if filter.PriceMin, err = floatParam(c, "price_min"); err != nil {
		return filter, err
	}
	if filter.PriceMax, err = floatParam(c, "price_max"); err != nil {
		return filter, err
	}
	if filter.ScreenNitsMin, err = intParam(c, "screen_nits_min"); err != nil {
		return filter, err
	}
	if filter.ScreenNitsMax, err = intParam(c, "screen_nits_max"); err != nil {
		return filter, err
	}

	return filter, nil
}

func csvStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func csvInts(raw string) ([]int, error) {
	var out []int
	for _, s := range csvStrings(raw) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func csvFloats(raw string) ([]float64, error) {
	var out []float64
	for _, s := range csvStrings(raw) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &v, nil
}

func intParam(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &v, nil
}
