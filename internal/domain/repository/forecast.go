package repository

import (
	"context"

	"github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// Forecaster abstracts the external trained regression model.
// Feature vectors must be keyed by the exact column names the model was
// trained with; every column not explicitly activated is supplied as 0.
type Forecaster interface {
	FeatureColumns(ctx context.Context) ([]string, error)
	Predict(ctx context.Context, features map[string]float64) (float64, error)
}

// ForecastCache memoizes resolved forecast answers keyed by
// (sorted foods, state, horizon count, horizon unit). Best-effort: a miss
// under concurrent identical requests may compute twice, which is acceptable.
type ForecastCache interface {
	Get(ctx context.Context, key string) (*models.Answer, bool)
	Set(ctx context.Context, key string, answer *models.Answer)
}
