package response_models

type CatalogImportSummary struct {
	DestinationsCreated int `json:"destinations_created"`
	DestinationsUpdated int `json:"destinations_updated"`
	AttractionsCreated  int `json:"attractions_created"`
	AttractionsUpdated  int `json:"attractions_updated"`
}
