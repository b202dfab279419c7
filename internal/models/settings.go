package models

// SettingsKey é a única chave sob a qual o blob de configurações é salvo
const SettingsKey = "app_settings"

// Settings contém a configuração do painel editada na página de configurações
type Settings struct {
	DSersUsername   string `json:"dsers_username"`
	DSersPassword   string `json:"dsers_password"`
	UpdateFrequency string `json:"update_frequency"`
	PriceMargin     string `json:"price_margin"`
}

// HasCredentials informa se as duas credenciais do fornecedor estão definidas
func (s Settings) HasCredentials() bool {
	return s.DSersUsername != "" && s.DSersPassword != ""
}
