package domain

import "time"

// ProductCandidate is one AI-suggested product record before normalization.
// Every field is optional: the model may return a number, a numeric string,
// free text, or nothing at all for any of them, so numeric fields use the
// flexible scalar types and text fields default to "".
type ProductCandidate struct {
	Name        FlexString `json:"name"`
	Description FlexString `json:"description"`
	ImageURL    FlexString `json:"imageUrl"`
	ProductURL  FlexString `json:"productUrl"`
	Price       FlexFloat  `json:"price"`

	CPUBrand           FlexString `json:"cpu_brand"`
	CPUDetails         FlexString `json:"cpu_details"`
	CPUBaseGHz         FlexFloat  `json:"cpu_base_ghz"`
	CPUTurboGHz        FlexFloat  `json:"cpu_turbo_ghz"`
	CPUCores           FlexInt    `json:"cpu_cores"`
	CPUThreads         FlexInt    `json:"cpu_threads"`
	CPUIntelSeries     FlexString `json:"cpu_intel_series"`
	CPUIntelGeneration FlexInt    `json:"cpu_intel_generation"`
	CPUAmdSeries       FlexString `json:"cpu_amd_series"`
	CPUAmdGeneration   FlexInt    `json:"cpu_amd_generation"`

	GPUBrand     FlexString `json:"gpu_brand"`
	GPUSeries    FlexString `json:"gpu_series"`
	GPUDetails   FlexString `json:"gpu_details"`
	GPUVramGB    FlexInt    `json:"gpu_vram_gb"`
	TGPDetectado FlexFloat  `json:"tgp_detectado"`
	TGPRange     FlexString `json:"tgp_range"`

	RAMSizeGB  FlexInt    `json:"ram_size_gb"`
	RAMDetails FlexString `json:"ram_details"`

	StorageGB      FlexInt    `json:"storage_gb"`
	StorageDetails FlexString `json:"storage_details"`

	ScreenSizeInches FlexFloat  `json:"screen_size_inches"`
	ScreenHz         FlexInt    `json:"screen_hz"`
	ScreenNits       FlexInt    `json:"screen_nits"`
	ScreenPanelType  FlexString `json:"screen_panel_type"`
	ScreenDetails    FlexString `json:"screen_details"`

	KeyboardTypeFeature FlexString `json:"keyboard_type_feature"`
	KeyboardDetails     FlexString `json:"keyboard_details"`

	BatteryDetails FlexString `json:"battery_details"`
	ChargerWattage FlexFloat  `json:"charger_wattage"`

	Offers []OfferCandidate `json:"offers"`
}

// OfferCandidate is a store offer as suggested by the model.
type OfferCandidate struct {
	StoreName FlexString `json:"store_name"`
	Price     FlexFloat  `json:"price"`
	URL       FlexString `json:"url"`
}

// NormalizedProduct is a ProductCandidate after field normalization: every
// numeric field is either a valid number or nil, and every enum field is one
// of its known literals or empty.
type NormalizedProduct struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	ProductURL  string   `json:"productUrl,omitempty"`
	Price       *float64 `json:"price,omitempty"`

	CPUBrand           string   `json:"cpu_brand,omitempty"`
	CPUDetails         string   `json:"cpu_details,omitempty"`
	CPUBaseGHz         *float64 `json:"cpu_base_ghz,omitempty"`
	CPUTurboGHz        *float64 `json:"cpu_turbo_ghz,omitempty"`
	CPUCores           *int     `json:"cpu_cores,omitempty"`
	CPUThreads         *int     `json:"cpu_threads,omitempty"`
	CPUIntelSeries     string   `json:"cpu_intel_series,omitempty"`
	CPUIntelGeneration *int     `json:"cpu_intel_generation,omitempty"`
	CPUAmdSeries       string   `json:"cpu_amd_series,omitempty"`
	CPUAmdGeneration   *int     `json:"cpu_amd_generation,omitempty"`

	GPUBrand     string   `json:"gpu_brand,omitempty"`
	GPUSeries    string   `json:"gpu_series,omitempty"`
	GPUDetails   string   `json:"gpu_details,omitempty"`
	GPUVramGB    *int     `json:"gpu_vram_gb,omitempty"`
	TGPDetectado *float64 `json:"tgp_detectado,omitempty"`
	TGPRange     string   `json:"tgp_range,omitempty"`

	RAMSizeGB  *int   `json:"ram_size_gb,omitempty"`
	RAMDetails string `json:"ram_details,omitempty"`

	StorageGB      *int   `json:"storage_gb,omitempty"`
	StorageDetails string `json:"storage_details,omitempty"`

	ScreenSizeInches *float64 `json:"screen_size_inches,omitempty"`
	ScreenHz         *int     `json:"screen_hz,omitempty"`
	ScreenNits       *int     `json:"screen_nits,omitempty"`
	ScreenPanelType  string   `json:"screen_panel_type,omitempty"`
	ScreenDetails    string   `json:"screen_details,omitempty"`

	KeyboardTypeFeature string `json:"keyboard_type_feature,omitempty"`
	KeyboardDetails     string `json:"keyboard_details,omitempty"`

	BatteryDetails string   `json:"battery_details,omitempty"`
	ChargerWattage *float64 `json:"charger_wattage,omitempty"`

	Offers []Offer `json:"offers"`
}

// Offer is a single store offer for a notebook. Price stays nil when the
// source value could not be parsed; the offer itself is kept.
type Offer struct {
	ID         int64    `json:"id,omitempty"`
	NotebookID int64    `json:"notebook_id,omitempty"`
	StoreName  string   `json:"store_name"`
	Price      *float64 `json:"price,omitempty"`
	URL        string   `json:"url"`
}

// Notebook is a persisted catalog entry: the normalized spec sheet plus the
// benchmark figures curated by hand in the admin panel.
type Notebook struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	NormalizedProduct

	FPSMedio1080pUltra        *float64 `json:"fps_medio_1080p_ultra,omitempty"`
	PerformancePorWatt        *float64 `json:"performance_por_watt,omitempty"`
	DesempenhoRelativo        *float64 `json:"desempenho_relativo,omitempty"`
	PerdaPercentual           *float64 `json:"perda_percentual,omitempty"`
	GanhoEficienciaPercentual *float64 `json:"ganho_eficiencia_percentual,omitempty"`
}

// EnrichRequest is the inbound body for the enrichment endpoint.
type EnrichRequest struct {
	ProductName string `json:"productName" binding:"required"`
}

// Known enum literals produced by the normalizer.
var (
	CPUBrands          = []string{"Intel", "AMD"}
	GPUBrands          = []string{"NVIDIA", "AMD", "Intel"}
	ScreenPanelTypes   = []string{"TN", "IPS", "VA", "mini-LED", "OLED"}
	KeyboardFeatures   = []string{"RGB", "Branco"}
	CPUIntelSeriesList = []string{"i3", "i5", "i7", "i9"}
	CPUAmdSeriesList   = []string{"Ryzen 3", "Ryzen 5", "Ryzen 7", "Ryzen 9"}
)
