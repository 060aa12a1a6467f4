package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comparanote/backend/internal/domain"
)

// notebookColumns is every persisted column except id and created_at, in the
// order used by insert/update/scan.
const notebookColumns = `name, description, image_url, product_url, price,
	cpu_brand, cpu_details, cpu_base_ghz, cpu_turbo_ghz, cpu_cores, cpu_threads,
	cpu_intel_series, cpu_intel_generation, cpu_amd_series, cpu_amd_generation,
	gpu_brand, gpu_series, gpu_details, gpu_vram_gb, tgp_detectado, tgp_range,
	ram_size_gb, ram_details, storage_gb, storage_details,
	screen_size_inches, screen_hz, screen_nits, screen_panel_type, screen_details,
	keyboard_type_feature, keyboard_details, battery_details, charger_wattage,
	fps_medio_1080p_ultra, performance_por_watt, desempenho_relativo,
	perda_percentual, ganho_eficiencia_percentual`

// CatalogStore persists notebooks and their offers in Postgres.
type CatalogStore struct {
	pool *pgxpool.Pool
}

// NewCatalogStore creates a catalog store backed by the given pool.
func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

// Connect opens a pgx pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// List returns notebooks matching the filter, newest first unless a price
// sort was requested, with each notebook's offers embedded.
func (s *CatalogStore) List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error) {
	query, args := buildListQuery(filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list notebooks: %w", err)
	}
	defer rows.Close()

	var notebooks []domain.Notebook
	ids := make([]int64, 0)
	for rows.Next() {
		nb, err := scanNotebook(rows)
		if err != nil {
			return nil, err
		}
		notebooks = append(notebooks, *nb)
		ids = append(ids, nb.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list notebooks: %w", err)
	}

	if len(ids) > 0 {
		offersByNotebook, err := s.loadOffers(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range notebooks {
			notebooks[i].Offers = offersByNotebook[notebooks[i].ID]
		}
	}

	return notebooks, nil
}

// Get returns one notebook with its offers.
func (s *CatalogStore) Get(ctx context.Context, id int64) (*domain.Notebook, error) {
	query := fmt.Sprintf("SELECT id, created_at, %s FROM notebooks WHERE id = $1", notebookColumns)

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("postgres: get notebook: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("postgres: get notebook: %w", err)
		}
		return nil, domain.ErrNotebookNotFound
	}
	nb, err := scanNotebook(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	offersByNotebook, err := s.loadOffers(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	nb.Offers = offersByNotebook[id]
	return nb, nil
}

// Create inserts a notebook together with its offers in one transaction, so
// a failed offer insert never leaves an orphan notebook row.
func (s *CatalogStore) Create(ctx context.Context, nb *domain.Notebook) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(
		"INSERT INTO notebooks (%s) VALUES (%s) RETURNING id",
		notebookColumns, placeholders(39),
	)

	var id int64
	if err := tx.QueryRow(ctx, query, notebookArgs(nb)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("postgres: insert notebook: %w", err)
	}

	for _, o := range nb.Offers {
		_, err := tx.Exec(ctx,
			"INSERT INTO ofertas (notebook_id, store_name, price, url) VALUES ($1, $2, $3, $4)",
			id, o.StoreName, o.Price, o.URL,
		)
		if err != nil {
			return 0, fmt.Errorf("postgres: insert offer: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return id, nil
}

// Update overwrites every column of an existing notebook.
func (s *CatalogStore) Update(ctx context.Context, nb *domain.Notebook) error {
	assignments := make([]string, 0, 39)
	for i, col := range splitColumns() {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
	}
	query := fmt.Sprintf("UPDATE notebooks SET %s WHERE id = $40", strings.Join(assignments, ", "))

	args := append(notebookArgs(nb), nb.ID)
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("postgres: update notebook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotebookNotFound
	}
	return nil
}

// Delete removes a notebook; the ofertas FK cascades.
func (s *CatalogStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM notebooks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres: delete notebook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotebookNotFound
	}
	return nil
}

// ReplaceOffers swaps the notebook's offer rows inside one transaction.
func (s *CatalogStore) ReplaceOffers(ctx context.Context, notebookID int64, offers []domain.Offer) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM ofertas WHERE notebook_id = $1", notebookID); err != nil {
		return fmt.Errorf("postgres: clear offers: %w", err)
	}

	for _, o := range offers {
		_, err := tx.Exec(ctx,
			"INSERT INTO ofertas (notebook_id, store_name, price, url) VALUES ($1, $2, $3, $4)",
			notebookID, o.StoreName, o.Price, o.URL,
		)
		if err != nil {
			return fmt.Errorf("postgres: insert offer: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *CatalogStore) loadOffers(ctx context.Context, notebookIDs []int64) (map[int64][]domain.Offer, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, notebook_id, store_name, price, url FROM ofertas WHERE notebook_id = ANY($1) ORDER BY id",
		notebookIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: load offers: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.Offer)
	for rows.Next() {
		var o domain.Offer
		if err := rows.Scan(&o.ID, &o.NotebookID, &o.StoreName, &o.Price, &o.URL); err != nil {
			return nil, fmt.Errorf("postgres: scan offer: %w", err)
		}
		result[o.NotebookID] = append(result[o.NotebookID], o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: load offers: %w", err)
	}
	return result, nil
}

// buildListQuery translates the filter into parameterized SQL. CPU filtering
// reproduces the storefront semantics: each selected brand forms an
// AND-group (brand + its series set + its generation set) and the groups are
// OR-ed together.
func buildListQuery(filter domain.NotebookFilter) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	hasIntelSub := len(filter.CPUIntelSeries) > 0 || len(filter.CPUIntelGeneration) > 0
	hasAmdSub := len(filter.CPUAmdSeries) > 0 || len(filter.CPUAmdGeneration) > 0

	if len(filter.CPUBrands) > 0 && (hasIntelSub || hasAmdSub) {
		var groups []string
		for _, brand := range filter.CPUBrands {
			switch strings.ToLower(brand) {
			case "intel":
				sub := []string{"cpu_brand = 'Intel'"}
				if len(filter.CPUIntelSeries) > 0 {
					sub = append(sub, "cpu_intel_series = ANY("+arg(filter.CPUIntelSeries)+")")
				}
				if len(filter.CPUIntelGeneration) > 0 {
					sub = append(sub, "cpu_intel_generation = ANY("+arg(filter.CPUIntelGeneration)+")")
				}
				groups = append(groups, "("+strings.Join(sub, " AND ")+")")
			case "amd":
				sub := []string{"cpu_brand = 'AMD'"}
				if len(filter.CPUAmdSeries) > 0 {
					sub = append(sub, "cpu_amd_series = ANY("+arg(filter.CPUAmdSeries)+")")
				}
				if len(filter.CPUAmdGeneration) > 0 {
					sub = append(sub, "cpu_amd_generation = ANY("+arg(filter.CPUAmdGeneration)+")")
				}
				groups = append(groups, "("+strings.Join(sub, " AND ")+")")
			}
		}
		if len(groups) > 0 {
			conds = append(conds, "("+strings.Join(groups, " OR ")+")")
		}
	} else if len(filter.CPUBrands) > 0 {
		normalized := make([]string, 0, len(filter.CPUBrands))
		for _, b := range filter.CPUBrands {
			switch strings.ToLower(b) {
			case "intel":
				normalized = append(normalized, "Intel")
			case "amd":
				normalized = append(normalized, "AMD")
			}
		}
		if len(normalized) > 0 {
			conds = append(conds, "cpu_brand = ANY("+arg(normalized)+")")
		}
	}

	if filter.CPUGHzMin != nil {
		conds = append(conds, "cpu_base_ghz >= "+arg(*filter.CPUGHzMin))
	}
	if filter.CPUGHzMax != nil {
		conds = append(conds, "cpu_base_ghz <= "+arg(*filter.CPUGHzMax))
	}

	if len(filter.GPUBrands) > 0 {
		conds = append(conds, "gpu_brand = ANY("+arg(filter.GPUBrands)+")")
	}
	if len(filter.GPUSeries) > 0 {
		conds = append(conds, "gpu_series = ANY("+arg(filter.GPUSeries)+")")
	}
	if len(filter.RAMSizeGB) > 0 {
		conds = append(conds, "ram_size_gb = ANY("+arg(filter.RAMSizeGB)+")")
	}
	if len(filter.StorageGB) > 0 {
		conds = append(conds, "storage_gb = ANY("+arg(filter.StorageGB)+")")
	}
	if len(filter.ScreenSizeInches) > 0 {
		conds = append(conds, "screen_size_inches = ANY("+arg(filter.ScreenSizeInches)+")")
	}
	if len(filter.ScreenHz) > 0 {
		conds = append(conds, "screen_hz = ANY("+arg(filter.ScreenHz)+")")
	}
	if len(filter.ScreenPanelTypes) > 0 {
		conds = append(conds, "screen_panel_type = ANY("+arg(filter.ScreenPanelTypes)+")")
	}
	if len(filter.KeyboardFeatures) > 0 {
		conds = append(conds, "keyboard_type_feature = ANY("+arg(filter.KeyboardFeatures)+")")
	}
	if filter.ScreenNitsMin != nil {
		conds = append(conds, "screen_nits >= "+arg(*filter.ScreenNitsMin))
	}
	if filter.ScreenNitsMax != nil {
		conds = append(conds, "screen_nits <= "+arg(*filter.ScreenNitsMax))
	}
	if filter.PriceMin != nil {
		conds = append(conds, "price >= "+arg(*filter.PriceMin))
	}
	if filter.PriceMax != nil {
		conds = append(conds, "price <= "+arg(*filter.PriceMax))
	}

	query := fmt.Sprintf("SELECT id, created_at, %s FROM notebooks", notebookColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	switch filter.Sort {
	case "price_asc":
		query += " ORDER BY price ASC NULLS LAST"
	case "price_desc":
		query += " ORDER BY price DESC NULLS LAST"
	default:
		query += " ORDER BY created_at DESC"
	}

	return query, args
}

func scanNotebook(rows pgx.Rows) (*domain.Notebook, error) {
	var nb domain.Notebook
	err := rows.Scan(
		&nb.ID, &nb.CreatedAt,
		&nb.Name, &nb.Description, &nb.ImageURL, &nb.ProductURL, &nb.Price,
		&nb.CPUBrand, &nb.CPUDetails, &nb.CPUBaseGHz, &nb.CPUTurboGHz, &nb.CPUCores, &nb.CPUThreads,
		&nb.CPUIntelSeries, &nb.CPUIntelGeneration, &nb.CPUAmdSeries, &nb.CPUAmdGeneration,
		&nb.GPUBrand, &nb.GPUSeries, &nb.GPUDetails, &nb.GPUVramGB, &nb.TGPDetectado, &nb.TGPRange,
		&nb.RAMSizeGB, &nb.RAMDetails, &nb.StorageGB, &nb.StorageDetails,
		&nb.ScreenSizeInches, &nb.ScreenHz, &nb.ScreenNits, &nb.ScreenPanelType, &nb.ScreenDetails,
		&nb.KeyboardTypeFeature, &nb.KeyboardDetails, &nb.BatteryDetails, &nb.ChargerWattage,
		&nb.FPSMedio1080pUltra, &nb.PerformancePorWatt, &nb.DesempenhoRelativo,
		&nb.PerdaPercentual, &nb.GanhoEficienciaPercentual,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotebookNotFound
		}
		return nil, fmt.Errorf("postgres: scan notebook: %w", err)
	}
	return &nb, nil
}

func notebookArgs(nb *domain.Notebook) []any {
	return []any{
		nb.Name, nb.Description, nb.ImageURL, nb.ProductURL, nb.Price,
		nb.CPUBrand, nb.CPUDetails, nb.CPUBaseGHz, nb.CPUTurboGHz, nb.CPUCores, nb.CPUThreads,
		nb.CPUIntelSeries, nb.CPUIntelGeneration, nb.CPUAmdSeries, nb.CPUAmdGeneration,
		nb.GPUBrand, nb.GPUSeries, nb.GPUDetails, nb.GPUVramGB, nb.TGPDetectado, nb.TGPRange,
		nb.RAMSizeGB, nb.RAMDetails, nb.StorageGB, nb.StorageDetails,
		nb.ScreenSizeInches, nb.ScreenHz, nb.ScreenNits, nb.ScreenPanelType, nb.ScreenDetails,
		nb.KeyboardTypeFeature, nb.KeyboardDetails, nb.BatteryDetails, nb.ChargerWattage,
		nb.FPSMedio1080pUltra, nb.PerformancePorWatt, nb.DesempenhoRelativo,
		nb.PerdaPercentual, nb.GanhoEficienciaPercentual,
	}
}

func splitColumns() []string {
	fields := strings.Split(notebookColumns, ",")
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, strings.TrimSpace(f))
	}
	return cols
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
