package domain

// MonthlyRate representa as premissas em vigor para um projeto em um mês
type MonthlyRate struct {
	Date                  string  `json:"date"` // Mês no formato yyyy-MM
	GrowthRate            float64 `json:"growthRate"`
	ChurnRate             float64 `json:"churnRate"`
	SalesMarketingExpense float64 `json:"salesMarketingExpense"`
}

// MonthlyOverride é um ajuste parcial de premissas para um único mês.
// Campos nil mantêm o default do projeto para aquele mês.
type MonthlyOverride struct {
	Date                  string   `json:"date"`
	Growth                *float64 `json:"growth,omitempty"`
	Churn                 *float64 `json:"churn,omitempty"`
	SalesMarketingExpense *float64 `json:"salesMarketingExpense,omitempty"`
}

// ProjectPricing define o preço base e a janela promocional de um projeto
type ProjectPricing struct {
	Base          float64 `json:"base"`          // USD
	PromoDiscount float64 `json:"promoDiscount"` // 0-1
	PromoMonths   int     `json:"promoMonths"`   // Primeiros N meses do horizonte
}

// ProjectPricingInput é a versão parcial de ProjectPricing usada em overrides
type ProjectPricingInput struct {
	Base          *float64 `json:"base,omitempty"`
	PromoDiscount *float64 `json:"promoDiscount,omitempty"`
	PromoMonths   *int     `json:"promoMonths,omitempty"`
}

// ProjectMetrics define as razões de custo específicas de um projeto.
// Fees é ponteiro porque zero explícito é um valor válido: só a ausência
// da taxa cai na TransactionFeeRate global.
type ProjectMetrics struct {
	Cogs float64  `json:"cogs"` // Razão de custo de mercadoria vendida (0-1)
	Fees *float64 `json:"fees"` // Razão de taxa do processador de pagamento (0-1)
}

// ProjectMetricsInput é a versão parcial de ProjectMetrics usada em overrides
type ProjectMetricsInput struct {
	Cogs *float64 `json:"cogs,omitempty"`
	Fees *float64 `json:"fees,omitempty"`
}

// ProjectDefinition é a definição imutável de um projeto no catálogo
type ProjectDefinition struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	StartingSubscribers int            `json:"startingSubscribers"`
	Pricing             ProjectPricing `json:"pricing"`
	Metrics             ProjectMetrics `json:"metrics"`
	MonthlyDefaults     []MonthlyRate  `json:"monthlyDefaults"`
}

// ProjectInput são os overrides por projeto enviados em uma simulação
type ProjectInput struct {
	ID                  string               `json:"id"`
	Name                *string              `json:"name,omitempty"`
	Description         *string              `json:"description,omitempty"`
	StartingSubscribers *int                 `json:"startingSubscribers,omitempty"`
	Pricing             *ProjectPricingInput `json:"pricing,omitempty"`
	Metrics             *ProjectMetricsInput `json:"metrics,omitempty"`
	MonthlyOverrides    []MonthlyOverride    `json:"monthlyOverrides,omitempty"`
}

// SharedExpenses são os custos operacionais não atribuídos a nenhum projeto,
// alocados apenas contra o forecast combinado
type SharedExpenses struct {
	GeneralAndAdministrative    float64 `json:"generalAndAdministrative"`
	TechnologyAndDevelopment    float64 `json:"technologyAndDevelopment"`
	FulfillmentAndService       float64 `json:"fulfillmentAndService"`
	DepreciationAndAmortization float64 `json:"depreciationAndAmortization"`
}

// SharedExpensesOverride é um ajuste parcial por categoria de despesa compartilhada
type SharedExpensesOverride struct {
	GeneralAndAdministrative    *float64 `json:"generalAndAdministrative,omitempty"`
	TechnologyAndDevelopment    *float64 `json:"technologyAndDevelopment,omitempty"`
	FulfillmentAndService       *float64 `json:"fulfillmentAndService,omitempty"`
	DepreciationAndAmortization *float64 `json:"depreciationAndAmortization,omitempty"`
}

// SharedExpenseSchedule mapeia mês (yyyy-MM) para override de despesas compartilhadas
type SharedExpenseSchedule map[string]SharedExpensesOverride

// GlobalSettings são as constantes do forecast inteiro, já resolvidas
// (defaults mesclados com os overrides da requisição)
type GlobalSettings struct {
	StartDate              string                `json:"startDate"`
	EndDate                string                `json:"endDate"`
	TransactionFeeRate     float64               `json:"transactionFeeRate"`
	FailedChargeRate       float64               `json:"failedChargeRate"`
	RefundRate             float64               `json:"refundRate"`
	ReactivationRate       float64               `json:"reactivationRate"`
	PlanUpgradeRate        float64               `json:"planUpgradeRate"`
	PlanDowngradeRate      float64               `json:"planDowngradeRate"`
	CouponRedemptionRate   float64               `json:"couponRedemptionRate"`
	VATRate                float64               `json:"vatRate"`
	CorporateTaxRate       float64               `json:"corporateTaxRate"`
	CorporateTaxThreshold  float64               `json:"corporateTaxThreshold"`
	SharedExpenses         SharedExpenses        `json:"sharedExpenses"`
	SharedExpenseOverrides SharedExpenseSchedule `json:"sharedExpenseOverrides,omitempty"`
}

// GlobalSettingsInput é o override parcial de GlobalSettings aceito na
// requisição. SharedExpenses é mesclado categoria a categoria;
// SharedExpenseOverrides é mesclado por chave de mês.
type GlobalSettingsInput struct {
	StartDate              *string                 `json:"startDate,omitempty"`
	EndDate                *string                 `json:"endDate,omitempty"`
	TransactionFeeRate     *float64                `json:"transactionFeeRate,omitempty"`
	FailedChargeRate       *float64                `json:"failedChargeRate,omitempty"`
	RefundRate             *float64                `json:"refundRate,omitempty"`
	ReactivationRate       *float64                `json:"reactivationRate,omitempty"`
	PlanUpgradeRate        *float64                `json:"planUpgradeRate,omitempty"`
	PlanDowngradeRate      *float64                `json:"planDowngradeRate,omitempty"`
	CouponRedemptionRate   *float64                `json:"couponRedemptionRate,omitempty"`
	VATRate                *float64                `json:"vatRate,omitempty"`
	CorporateTaxRate       *float64                `json:"corporateTaxRate,omitempty"`
	CorporateTaxThreshold  *float64                `json:"corporateTaxThreshold,omitempty"`
	SharedExpenses         *SharedExpensesOverride `json:"sharedExpenses,omitempty"`
	SharedExpenseOverrides SharedExpenseSchedule   `json:"sharedExpenseOverrides,omitempty"`
}

// SimulationRequest é o payload de entrada de uma simulação
type SimulationRequest struct {
	Projects           []ProjectInput       `json:"projects,omitempty"`
	GlobalSettings     *GlobalSettingsInput `json:"globalSettings,omitempty"`
	SelectedProjectIDs []string             `json:"selectedProjectIds,omitempty"`
}

// MetricPoint é o snapshot completo de métricas de um mês, tanto para um
// projeto isolado quanto para os totais combinados
type MetricPoint struct {
	Date                  string  `json:"date"`
	ActiveCustomers       int     `json:"activeCustomers"`
	NewCustomers          int     `json:"newCustomers"`
	ChurnedCustomers      int     `json:"churnedCustomers"`
	ReactivatedCustomers  int     `json:"reactivatedCustomers"`
	GrossRevenue          float64 `json:"grossRevenue"`
	MRR                   float64 `json:"mrr"`
	NetRevenue            float64 `json:"netRevenue"`
	Fees                  float64 `json:"fees"`
	Cogs                  float64 `json:"cogs"`
	ARPU                  float64 `json:"arpu"`
	ARR                   float64 `json:"arr"`
	LTV                   float64 `json:"ltv"`
	MRRGrowthRate         float64 `json:"mrrGrowthRate"`
	UserChurnRate         float64 `json:"userChurnRate"`
	RevenueChurnRate      float64 `json:"revenueChurnRate"`
	QuickRatio            float64 `json:"quickRatio"`
	Upgrades              int     `json:"upgrades"`
	Downgrades            int     `json:"downgrades"`
	OtherRevenue          float64 `json:"otherRevenue"`
	CouponsRedeemed       int     `json:"couponsRedeemed"`
	FailedCharges         float64 `json:"failedCharges"`
	Refunds               float64 `json:"refunds"`
	ExpansionMRR          float64 `json:"expansionMRR"`
	ContractionMRR        float64 `json:"contractionMRR"`
	ChurnMRR              float64 `json:"churnMRR"`
	NewMRR                float64 `json:"newMRR"`
	ActiveSubscriptions   int     `json:"activeSubscriptions"`
	SalesMarketingExpense float64 `json:"salesMarketingExpense"`
	SharedExpenses        float64 `json:"sharedExpenses"`
	TotalExpenses         float64 `json:"totalExpenses"`
	VAT                   float64 `json:"vat"`
	CorporateIncomeTax    float64 `json:"corporateIncomeTax"`
	Profit                float64 `json:"profit"`
}

// TimeseriesPoint é um mês do forecast combinado: os totais dos projetos
// selecionados mais o ponto individual de cada projeto
type TimeseriesPoint struct {
	Date     string                  `json:"date"`
	Totals   *MetricPoint            `json:"totals"`
	Projects map[string]*MetricPoint `json:"projects"`
}

// CohortRow é o histórico de retenção de uma coorte.
// A primeira entrada é sempre 1.0; a sequência nunca cresce.
type CohortRow struct {
	CohortStart string    `json:"cohortStart"`
	Retention   []float64 `json:"retention"`
}

// CohortMatrix agrupa as coortes abertas de um projeto ao longo do horizonte
type CohortMatrix struct {
	ProjectID string      `json:"projectId"`
	Rows      []CohortRow `json:"rows"`
}

// ProjectRef identifica um projeto nos metadados da resposta
type ProjectRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DashboardSummary são as métricas de destaque do último mês da série combinada
type DashboardSummary struct {
	TotalMRR           float64 `json:"totalMRR"`
	GrossRevenue       float64 `json:"grossRevenue"`
	NetRevenue         float64 `json:"netRevenue"`
	TotalExpenses      float64 `json:"totalExpenses"`
	VAT                float64 `json:"vat"`
	CorporateIncomeTax float64 `json:"corporateIncomeTax"`
	Profit             float64 `json:"profit"`
	TotalCustomers     int     `json:"totalCustomers"`
	ARR                float64 `json:"arr"`
	LTV                float64 `json:"ltv"`
	QuickRatio         float64 `json:"quickRatio"`
	MRRGrowthRate      float64 `json:"mrrGrowthRate"`
	UserChurnRate      float64 `json:"userChurnRate"`
	RevenueChurnRate   float64 `json:"revenueChurnRate"`
}

// ForecastMetadata descreve o contexto em que a simulação foi executada
type ForecastMetadata struct {
	Months         []string       `json:"months"`
	Projects       []ProjectRef   `json:"projects"`
	GlobalDefaults GlobalSettings `json:"globalDefaults"`
}

// SimulationResponse é a resposta completa de uma simulação
type SimulationResponse struct {
	Summary    DashboardSummary  `json:"summary"`
	Timeseries []TimeseriesPoint `json:"timeseries"`
	Cohorts    []CohortMatrix    `json:"cohorts"`
	Metadata   ForecastMetadata  `json:"metadata"`
}

// ForecastBlueprint é o payload default que o frontend usa como ponto de
// partida para edição
type ForecastBlueprint struct {
	Projects       []BlueprintProject `json:"projects"`
	GlobalSettings GlobalSettings     `json:"globalSettings"`
}

// BlueprintProject expõe a definição completa de um projeto no blueprint
type BlueprintProject struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	StartingSubscribers int            `json:"startingSubscribers"`
	Pricing             ProjectPricing `json:"pricing"`
	Metrics             ProjectMetrics `json:"metrics"`
	MonthlyData         []MonthlyRate  `json:"monthlyData"`
}
