package usecase

import (
	"fmt"
	"strings"
)

// enrichmentPromptTemplate instructs the model to answer with a strict JSON
// array of product records. Field names mirror the catalog schema so the
// answer can be decoded without renaming.
const enrichmentPromptTemplate = `Você é um especialista em hardware de notebooks. Para o notebook %q, encontre de 2 a 4 configurações vendidas no Brasil.

Para cada configuração, retorne um objeto JSON com as seguintes chaves:
- name: o nome completo do modelo.
- description: um resumo curto do aparelho.
- imageUrl: URL de uma imagem do produto.
- productUrl: URL da página do produto.
- price: preço em reais (apenas o número).
- cpu_brand: "Intel" ou "AMD".
- cpu_details: as especificações da CPU em texto.
- cpu_base_ghz / cpu_turbo_ghz: clocks em GHz (apenas números).
- cpu_cores / cpu_threads: contagens (apenas números).
- cpu_intel_series: uma de "i3", "i5", "i7", "i9" (somente CPUs Intel).
- cpu_intel_generation: geração Intel, ex.: 13 (somente CPUs Intel).
- cpu_amd_series: uma de "Ryzen 3", "Ryzen 5", "Ryzen 7", "Ryzen 9" (somente CPUs AMD).
- cpu_amd_generation: geração AMD expandida, ex.: 7000 (somente CPUs AMD).
- gpu_brand: "NVIDIA", "AMD" ou "Intel".
- gpu_series: o modelo da GPU, ex.: "RTX 4060".
- gpu_details: as especificações da GPU em texto.
- gpu_vram_gb: VRAM em GB (apenas o número).
- tgp_detectado: o TGP real em watts (apenas o número).
- tgp_range: o intervalo de TGP suportado pela GPU, ex.: "90W - 140W".
- ram_size_gb: memória RAM em GB (apenas o número).
- ram_details: detalhes da memória RAM.
- storage_gb: armazenamento em GB (apenas o número, 1TB = 1024).
- storage_details: detalhes do armazenamento.
- screen_size_inches / screen_hz / screen_nits: números da tela.
- screen_panel_type: uma de "TN", "IPS", "VA", "mini-LED", "OLED".
- screen_details: informações da tela em texto.
- keyboard_type_feature: uma das três opções exatas: "RGB", "Branco", ou "Sem Iluminação".
- keyboard_details: detalhes do teclado.
- battery_details: capacidade da bateria e carregador.
- charger_wattage: potência do carregador em watts (apenas o número).
- offers: lista de objetos {"store_name", "price", "url"} com ofertas reais.

Retorne a resposta ESTRITAMENTE como um array de objetos JSON, sem texto fora do array.`

// BuildEnrichmentPrompt embeds the product query into the instruction
// template. The caller validates that query is non-empty.
func BuildEnrichmentPrompt(query string) string {
	return fmt.Sprintf(enrichmentPromptTemplate, strings.TrimSpace(query))
}
