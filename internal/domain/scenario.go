package domain

import "time"

// RateOverrideState é o ajuste de taxas de um projeto em um mês, como salvo
// em um cenário
type RateOverrideState struct {
	Growth                *float64 `json:"growth,omitempty"`
	Churn                 *float64 `json:"churn,omitempty"`
	SalesMarketingExpense *float64 `json:"salesMarketingExpense,omitempty"`
}

// MonthlyOverrideState mapeia mês (yyyy-MM) para o ajuste daquele mês
type MonthlyOverrideState map[string]RateOverrideState

// ProjectSettingAdjustments são os ajustes escalares de um projeto salvos em
// um cenário
type ProjectSettingAdjustments struct {
	StartingSubscribers *int               `json:"startingSubscribers,omitempty"`
	Pricing             map[string]float64 `json:"pricing,omitempty"`
	Metrics             map[string]float64 `json:"metrics,omitempty"`
}

// ProjectSettingsState mapeia id de projeto para seus ajustes
type ProjectSettingsState map[string]ProjectSettingAdjustments

// ScenarioInput é o payload de criação/atualização de um cenário. O cenário
// armazena exatamente os overrides e seleções que alimentam uma simulação;
// o motor nunca lê cenários diretamente.
type ScenarioInput struct {
	Name               string                          `json:"name"`
	Notes              string                          `json:"notes,omitempty"`
	Overrides          map[string]MonthlyOverrideState `json:"overrides"`
	ProjectSettings    ProjectSettingsState            `json:"projectSettings"`
	SelectedProjectIDs []string                        `json:"selectedProjectIds"`
	GlobalSettings     *GlobalSettingsInput            `json:"globalSettings,omitempty"`
}

// Scenario é um cenário persistido
type Scenario struct {
	ID                 string                          `json:"id"`
	Name               string                          `json:"name"`
	Notes              string                          `json:"notes,omitempty"`
	Overrides          map[string]MonthlyOverrideState `json:"overrides"`
	ProjectSettings    ProjectSettingsState            `json:"projectSettings"`
	SelectedProjectIDs []string                        `json:"selectedProjectIds"`
	GlobalSettings     *GlobalSettingsInput            `json:"globalSettings,omitempty"`
	CreatedAt          time.Time                       `json:"createdAt"`
	UpdatedAt          time.Time                       `json:"updatedAt"`
}
