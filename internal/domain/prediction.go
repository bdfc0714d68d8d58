package domain

// PredictionRequest is sent to the Python ML service
type PredictionRequest struct {
	Features map[string]any `json:"features"`
	Metal    string         `json:"metal,omitempty"`
}

// FeatureContribution is one SHAP attribution returned by the ML service
type FeatureContribution struct {
	Feature string  `json:"feature"`
	SHAP    float64 `json:"shap"`
}

// PredictionResponse is the model-based MCI estimate
type PredictionResponse struct {
	PredictedMCI  float64               `json:"predicted_mci"`
	CILower       float64               `json:"ci_lower"`
	CIUpper       float64               `json:"ci_upper"`
	Contributions []FeatureContribution `json:"contributions"`
	IsMock        bool                  `json:"is_mock"`
}

// DriverRecommendation turns a SHAP attribution into advice
type DriverRecommendation struct {
	Feature string  `json:"feature"`
	SHAP    float64 `json:"shap"`
	Message string  `json:"message"`
	Action  string  `json:"action"`
}
