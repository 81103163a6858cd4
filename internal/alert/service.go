// Package alert implements the decision-and-dispatch pipeline: validate an
// alert request, retrieve a forecast, classify its severity, and, only when
// warranted, dispatch a warning email and record a receipt of it.
package alert

import (
	"context"
	"log/slog"

	"raincheck/internal/types"
)

// RequestValidator validates the inbound request against its struct tags.
// Defined locally to avoid tight coupling to the API chassis; core.Validator
// satisfies it.
type RequestValidator interface {
	ValidateStruct(dst any) error
}

// PipelineMetrics records pipeline telemetry. core.Metrics satisfies it; a
// nil value disables recording.
type PipelineMetrics interface {
	RecordEvaluation(severe bool)
	RecordDispatchSuccess()
	RecordDispatchFailure()
	RecordStorageFailure()
}

// Outcome is the result of a completed alert evaluation.
//
// StorageErr is a secondary diagnostic: the warning email left the system but
// its audit record failed to write. It never overrides Notified=true, because
// persistence is a best-effort audit trail, not a precondition of the
// external effect.
type Outcome struct {
	Result     types.AlertResult
	StorageErr error
}

// Service orchestrates one alert evaluation per call. The pipeline is
// strictly sequential: each step's input depends on the prior step's output,
// and side effects must not race with the decision that authorized them.
type Service struct {
	forecasts  types.ForecastClient
	dispatcher types.NotificationDispatcher
	store      types.NotificationStore
	validator  RequestValidator
	metrics    PipelineMetrics
	logger     *slog.Logger
}

// NewService creates an alert Service. metrics may be nil.
func NewService(
	forecasts types.ForecastClient,
	dispatcher types.NotificationDispatcher,
	store types.NotificationStore,
	validator RequestValidator,
	metrics PipelineMetrics,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		forecasts:  forecasts,
		dispatcher: dispatcher,
		store:      store,
		validator:  validator,
		metrics:    metrics,
		logger:     logger,
	}
}

// HandleAlert runs the pipeline for one request:
//
//	validate -> fetch forecast -> evaluate -> [dispatch -> persist]
//
// Dispatch and persistence are intentionally sequenced, not parallel: a
// record must never exist for an email that was never sent, but an email that
// was sent must not be reported lost even if its audit record fails to write.
//
// Failure semantics:
//   - validation or forecast failure aborts before any side effect;
//   - dispatch failure stops the pipeline with no record appended, and the
//     returned error carries notified=false in its details;
//   - persistence failure after a successful dispatch is returned as
//     Outcome.StorageErr alongside a Notified=true result.
func (s *Service) HandleAlert(ctx context.Context, req types.AlertRequest) (Outcome, error) {
	if err := s.validator.ValidateStruct(&req); err != nil {
		return Outcome{}, err
	}

	forecast, err := s.forecasts.Fetch(ctx, req.Location)
	if err != nil {
		s.logger.Error("forecast fetch failed",
			"location", req.Location,
			"error", err,
		)
		return Outcome{}, err
	}

	decision := Evaluate(forecast)
	if s.metrics != nil {
		s.metrics.RecordEvaluation(decision.ShouldNotify)
	}

	result := types.AlertResult{
		ForecastCode:        decision.ConditionCode,
		ForecastDescription: decision.ConditionText,
		Notified:            false,
	}

	if !decision.ShouldNotify {
		s.logger.Debug("forecast below severity threshold",
			"location", req.Location,
			"condition_code", decision.ConditionCode,
		)
		return Outcome{Result: result}, nil
	}

	subject, body := warningMessage(decision.ConditionText)
	if err := s.dispatcher.Send(ctx, req.Email, subject, body); err != nil {
		if s.metrics != nil {
			s.metrics.RecordDispatchFailure()
		}
		s.logger.Error("warning dispatch failed",
			"location", req.Location,
			"condition_code", decision.ConditionCode,
			"error", err,
		)
		return Outcome{}, dispatchErrorWithContext(err, result)
	}
	if s.metrics != nil {
		s.metrics.RecordDispatchSuccess()
	}
	result.Notified = true

	if _, err := s.store.Append(ctx, req.Email, req.Location, decision.ConditionText); err != nil {
		if s.metrics != nil {
			s.metrics.RecordStorageFailure()
		}
		// The email genuinely left the system; the missing receipt is a
		// secondary diagnostic, not a failure of the alert.
		s.logger.Error("notification receipt write failed after dispatch",
			"location", req.Location,
			"error", err,
		)
		return Outcome{Result: result, StorageErr: err}, nil
	}

	s.logger.Info("delay warning dispatched",
		"location", req.Location,
		"condition_code", decision.ConditionCode,
	)
	return Outcome{Result: result}, nil
}

// dispatchErrorWithContext annotates a dispatch failure with the decision
// context so the caller sees what was decided and attempted.
func dispatchErrorWithContext(err error, result types.AlertResult) error {
	appErr, ok := err.(*types.AppError)
	if !ok {
		appErr = types.NewAppError(types.ErrCodeUpstreamEmailProvider, "email dispatch failed", err)
	}
	return types.NewAppErrorWithDetails(
		appErr.Code,
		appErr.Message,
		appErr.Err,
		map[string]any{
			"notified":             false,
			"forecast_code":        result.ForecastCode,
			"forecast_description": result.ForecastDescription,
		},
	)
}
