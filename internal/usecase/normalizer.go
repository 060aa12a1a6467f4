package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/comparanote/backend/internal/domain"
)

// Package-level compiled regex patterns for the free-text fallback
// extraction. Each pattern scans the summary field of its spec group
// (cpu_details, gpu_details, ...), never the whole record.
var (
	ghzPattern      = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*GHz`)
	turboGhzPattern = regexp.MustCompile(`(?i)(?:turbo|max|boost)\D{0,25}?(\d+(?:[.,]\d+)?)\s*GHz`)
	coresPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:núcleos|nucleos|cores)`)
	threadsPattern  = regexp.MustCompile(`(?i)(\d+)\s*(?:threads|fios)`)

	intelSeriesPattern = regexp.MustCompile(`(?i)\bi([3579])\b`)
	intelGenPattern    = regexp.MustCompile(`(?i)\bi[3579][\s-]?(\d{2})\d{2,3}`)
	amdSeriesPattern   = regexp.MustCompile(`(?i)\b(?:ryzen\s*|r)([3579])\b`)
	amdGenPattern      = regexp.MustCompile(`(?i)\b(?:ryzen\s*[3579]|r[3579])\s*(\d)\d{3}`)

	wattPattern = regexp.MustCompile(`(?i)(\d+)\s*W\b`)
	gbPattern   = regexp.MustCompile(`(?i)(\d+)\s*GB\b`)
	// Storage accepts a decimal so "1.5TB" still converts.
	storageSizePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(TB|GB)\b`)

	screenSizePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:["”]|polegadas)`)
	screenHzPattern   = regexp.MustCompile(`(?i)(\d+)\s*Hz\b`)
	screenNitsPattern = regexp.MustCompile(`(?i)(\d+)\s*nits\b`)
	panelTypePattern  = regexp.MustCompile(`(?i)\b(mini-?led|oled|ips|va|tn)\b`)

	// Charger wattage needs a charger keyword near the watt figure, in either
	// order, so a GPU TGP mentioned in the same text is not mistaken for it.
	chargerAfterPattern  = regexp.MustCompile(`(?i)(?:carregador|charger|power\s*adapter|fonte)\D{0,30}?(\d+)\s*W\b`)
	chargerBeforePattern = regexp.MustCompile(`(?i)(\d+)\s*W\b[^0-9]{0,30}?(?:carregador|charger|power\s*adapter|fonte)`)
)

// gpuSeriesRule matches one known GPU model-name shape and rewrites the
// match into its canonical catalog form.
type gpuSeriesRule struct {
	re    *regexp.Regexp
	canon func(m []string) string
}

var gpuSeriesRules = []gpuSeriesRule{
	{regexp.MustCompile(`(?i)\bRTX\s*(\d{4})(?:\s*(Ti|S)\b)?`), func(m []string) string {
		s := "RTX " + m[1]
		switch strings.ToLower(m[2]) {
		case "ti":
			s += " Ti"
		case "s":
			s += "S"
		}
		return s
	}},
	{regexp.MustCompile(`(?i)\bRX\s*(\d{4})([MS])?\b`), func(m []string) string {
		return "RX " + m[1] + strings.ToUpper(m[2])
	}},
	{regexp.MustCompile(`(?i)\bGTX\s*(\d{4})\b`), func(m []string) string {
		return "GTX " + m[1]
	}},
	{regexp.MustCompile(`(?i)\bArc\s*A(\d{3})(M)?\b`), func(m []string) string {
		return "Arc A" + m[1] + strings.ToUpper(m[2])
	}},
	{regexp.MustCompile(`(?i)\bUHD\s*Graphics\b`), func(m []string) string {
		return "UHD Graphics"
	}},
	{regexp.MustCompile(`(?i)\bIris\s*Xe\b`), func(m []string) string {
		return "Iris Xe"
	}},
	{regexp.MustCompile(`(?i)\bRadeon\s*Graphics\b`), func(m []string) string {
		return "Radeon Graphics"
	}},
}

var panelTypeCanon = map[string]string{
	"tn":       "TN",
	"ips":      "IPS",
	"va":       "VA",
	"miniled":  "mini-LED",
	"mini-led": "mini-LED",
	"oled":     "OLED",
}

// NormalizeCandidate coerces one AI-suggested record into the strict catalog
// schema. Every field is normalized independently: a malformed value degrades
// to absent, it never fails the record. Structured values win over free-text
// extraction; patterns run only when the structured field is absent.
func NormalizeCandidate(c *domain.ProductCandidate) *domain.NormalizedProduct {
	p := &domain.NormalizedProduct{
		Name:        strings.TrimSpace(string(c.Name)),
		Description: strings.TrimSpace(string(c.Description)),
		ImageURL:    strings.TrimSpace(string(c.ImageURL)),
		ProductURL:  strings.TrimSpace(string(c.ProductURL)),
		Price:       nonNegative(c.Price.Ptr()),
	}

	normalizeCPU(c, p)
	normalizeGPU(c, p)
	normalizeMemory(c, p)
	normalizeStorage(c, p)
	normalizeScreen(c, p)
	normalizeKeyboard(c, p)
	normalizeBattery(c, p)
	p.Offers = normalizeOffers(c.Offers)

	return p
}

func normalizeCPU(c *domain.ProductCandidate, p *domain.NormalizedProduct) {
	details := string(c.CPUDetails)
	p.CPUDetails = strings.TrimSpace(details)

	p.CPUBaseGHz = pickFloat(c.CPUBaseGHz, func() *float64 { return extractBaseGHz(details) })
	p.CPUTurboGHz = pickFloat(c.CPUTurboGHz, func() *float64 { return extractDecimal(turboGhzPattern, details) })
	p.CPUCores = pickInt(c.CPUCores, func() *int { return extractInt(coresPattern, details) })
	p.CPUThreads = pickInt(c.CPUThreads, func() *int { return extractInt(threadsPattern, details) })

	p.CPUBrand = canonicalEnum(string(c.CPUBrand), domain.CPUBrands)
	if p.CPUBrand == "" {
		p.CPUBrand = detectCPUBrand(details)
	}

	p.CPUIntelSeries = canonicalEnum(string(c.CPUIntelSeries), domain.CPUIntelSeriesList)
	if p.CPUIntelSeries == "" {
		if m := intelSeriesPattern.FindStringSubmatch(details); m != nil {
			p.CPUIntelSeries = "i" + m[1]
		}
	}
	p.CPUIntelGeneration = pickInt(c.CPUIntelGeneration, func() *int { return extractInt(intelGenPattern, details) })

	p.CPUAmdSeries = canonicalEnum(string(c.CPUAmdSeries), domain.CPUAmdSeriesList)
	if p.CPUAmdSeries == "" {
		if m := amdSeriesPattern.FindStringSubmatch(details); m != nil {
			p.CPUAmdSeries = "Ryzen " + m[1]
		}
	}
	p.CPUAmdGeneration = pickInt(c.CPUAmdGeneration, func() *int {
		if m := amdGenPattern.FindStringSubmatch(details); m != nil {
			lead, _ := strconv.Atoi(m[1])
			gen := lead * 1000
			return &gen
		}
		return nil
	})

	// Brand-specific fields are mutually exclusive: a record is either an
	// Intel machine or an AMD one.
	switch p.CPUBrand {
	case "Intel":
		p.CPUAmdSeries = ""
		p.CPUAmdGeneration = nil
	case "AMD":
		p.CPUIntelSeries = ""
		p.CPUIntelGeneration = nil
	}
}

func normalizeGPU(c *domain.ProductCandidate, p *domain.NormalizedProduct) {
	details := string(c.GPUDetails)
	p.GPUDetails = strings.TrimSpace(details)
	p.TGPRange = strings.TrimSpace(string(c.TGPRange))

	p.GPUBrand = canonicalEnum(string(c.GPUBrand), domain.GPUBrands)
	if p.GPUBrand == "" {
		p.GPUBrand = detectGPUBrand(details)
	}

	// The structured series value goes through the same model-name rules as
	// the free text, so whatever survives is always in canonical form.
	if s := canonicalGPUSeries(string(c.GPUSeries)); s != "" {
		p.GPUSeries = s
	} else {
		p.GPUSeries = canonicalGPUSeries(details)
	}

	p.GPUVramGB = pickInt(c.GPUVramGB, func() *int { return extractInt(gbPattern, details) })
	p.TGPDetectado = pickFloat(c.TGPDetectado, func() *float64 { return extractDecimal(wattPattern, details) })
}

func normalizeMemory(c *domain.ProductCandidate, p *domain.NormalizedProduct) {
	p.RAMDetails = strings.TrimSpace(string(c.RAMDetails))
	p.RAMSizeGB = pickInt(c.RAMSizeGB, func() *int { return extractInt(gbPattern, string(c.RAMDetails)) })
}

func normalizeStorage(c *domain.ProductCandidate, p *domain.NormalizedProduct) {
	p.StorageDetails = strings.TrimSpace(string(c.StorageDetails))
	p.StorageGB = pickInt(c.StorageGB, func() *int { return extractStorageGB(string(c.StorageDetails)) })
}

func normalizeScreen(c *domain.ProductCandidate, p *domain.NormalizedProduct) {
	details := string(c.ScreenDetails)
	p.ScreenDetails = strings.TrimSpace(details)

	p.ScreenSizeInches = pickFloat(c.ScreenSizeInches, func() *float64 { return extractDecimal(screenSizePattern, details) })
	p.ScreenHz = pickInt(c.ScreenHz, func() *int { return extractInt(screenHzPattern, details) })
	p.ScreenNits = pickInt(c.ScreenNits, func() *int { return extractInt(screenNitsPattern, details) })

	p.ScreenPanelType = canonicalEnum(string(c.ScreenPanelType), domain.ScreenPanelTypes)
	if p.ScreenPanelType == "" {
		if m := panelTypePattern.FindStringSubmatch(details); m != nil {
			p.ScreenPanelType = panelTypeCanon[strings.ToLower(m[1])]
		}
	}
}

func normalizeKeyboard(c *domain.ProductCandidate, p *domain.NormalizedProduct) {
	p.KeyboardDetails = strings.TrimSpace(string(c.KeyboardDetails))

	p.KeyboardTypeFeature = canonicalEnum(string(c.KeyboardTypeFeature), domain.KeyboardFeatures)
	if p.KeyboardTypeFeature == "" {
		combined := strings.ToLower(string(c.KeyboardDetails) + " " + string(c.KeyboardTypeFeature))
		switch {
		case strings.Contains(combined, "rgb"):
			p.KeyboardTypeFeature = "RGB"
		case strings.Contains(combined, "branco"):
			p.KeyboardTypeFeature = "Branco"
		}
	}
}

func normalizeBattery(c *domain.ProductCandidate, p *domain.NormalizedProduct) {
	p.BatteryDetails = strings.TrimSpace(string(c.BatteryDetails))

	p.ChargerWattage = pickFloat(c.ChargerWattage, func() *float64 {
		// Charger info shows up in the battery summary or in the general
		// description, so both are searched.
		combined := string(c.BatteryDetails) + " " + string(c.Description)
		if m := chargerAfterPattern.FindStringSubmatch(combined); m != nil {
			if v, ok := domain.CoerceFloat(m[1]); ok {
				return &v
			}
		}
		if m := chargerBeforePattern.FindStringSubmatch(combined); m != nil {
			if v, ok := domain.CoerceFloat(m[1]); ok {
				return &v
			}
		}
		return nil
	})

	if p.BatteryDetails == "" && p.ChargerWattage != nil {
		p.BatteryDetails = fmt.Sprintf("Carregador de %.0fW", *p.ChargerWattage)
	}
}

// normalizeOffers keeps every offer; only an unparseable or negative price is
// dropped, never the offer itself.
func normalizeOffers(in []domain.OfferCandidate) []domain.Offer {
	offers := make([]domain.Offer, 0, len(in))
	for _, o := range in {
		offers = append(offers, domain.Offer{
			StoreName: strings.TrimSpace(string(o.StoreName)),
			Price:     nonNegative(o.Price.Ptr()),
			URL:       strings.TrimSpace(string(o.URL)),
		})
	}
	return offers
}

// pickFloat prefers the structured value and runs the free-text fallback
// only when it is absent.
func pickFloat(v domain.FlexFloat, fallback func() *float64) *float64 {
	if v.Valid {
		f := v.Value
		return &f
	}
	return fallback()
}

func pickInt(v domain.FlexInt, fallback func() *int) *int {
	if v.Valid {
		i := v.Value
		return &i
	}
	return fallback()
}

// canonicalEnum returns the known literal matching the raw value
// case-insensitively, or "" when it is not one of them.
func canonicalEnum(raw string, known []string) string {
	raw = strings.TrimSpace(raw)
	for _, k := range known {
		if strings.EqualFold(raw, k) {
			return k
		}
	}
	return ""
}

func detectCPUBrand(details string) string {
	lower := strings.ToLower(details)
	switch {
	case strings.Contains(lower, "intel"):
		return "Intel"
	case strings.Contains(lower, "ryzen"), strings.Contains(lower, "amd"):
		return "AMD"
	}
	return ""
}

func detectGPUBrand(details string) string {
	lower := strings.ToLower(details)
	switch {
	case strings.Contains(lower, "nvidia"), strings.Contains(lower, "geforce"):
		return "NVIDIA"
	case strings.Contains(lower, "amd"), strings.Contains(lower, "radeon"):
		return "AMD"
	case strings.Contains(lower, "intel"):
		return "Intel"
	}
	return ""
}

func canonicalGPUSeries(text string) string {
	for _, rule := range gpuSeriesRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return rule.canon(m)
		}
	}
	return ""
}

// extractBaseGHz returns the first clock figure that is not the turbo one.
func extractBaseGHz(details string) *float64 {
	turbo := turboGhzPattern.FindStringSubmatchIndex(details)
	for _, m := range ghzPattern.FindAllStringSubmatchIndex(details, -1) {
		// m[2] is the start of the number group; skip the turbo occurrence.
		if turbo != nil && m[2] == turbo[2] {
			continue
		}
		if v, ok := parseDecimal(details[m[2]:m[3]]); ok {
			return &v
		}
	}
	return nil
}

func extractStorageGB(details string) *int {
	m := storageSizePattern.FindStringSubmatch(details)
	if m == nil {
		return nil
	}
	v, ok := parseDecimal(m[1])
	if !ok {
		return nil
	}
	if strings.EqualFold(m[2], "TB") {
		v *= 1024
	}
	gb := int(math.Round(v))
	return &gb
}

func extractDecimal(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	if v, ok := parseDecimal(m[1]); ok {
		return &v
	}
	return nil
}

func extractInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}

// parseDecimal accepts both "3.8" and the Portuguese "3,8".
func parseDecimal(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func nonNegative(v *float64) *float64 {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}
