package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/services"
	"github.com/desertthunder/boardsync/internal/shared"
)

// UntitledPlaceholder is the title given to items whose source title is empty.
const UntitledPlaceholder = "Untitled"

// ImageVariants lists the usable image renditions, best quality first.
var ImageVariants = []string{"original", "1200x", "600x", "400x300", "150x150"}

// SyncRequest names the two credentials and the board pair of one run.
type SyncRequest struct {
	SourceToken        string
	DestinationToken   string
	SourceBoardID      string
	DestinationBoardID string
}

func (r SyncRequest) validate(source, destination string) error {
	if r.SourceToken == "" {
		return &shared.MissingCredentialError{Provider: source}
	}
	if r.DestinationToken == "" {
		return &shared.MissingCredentialError{Provider: destination}
	}
	if r.SourceBoardID == "" {
		return fmt.Errorf("%w: source board", shared.ErrMissingArgument)
	}
	if r.DestinationBoardID == "" {
		return fmt.Errorf("%w: destination board", shared.ErrMissingArgument)
	}
	return nil
}

// Pipeline copies the images of a source board onto a destination board.
//
// Items are handled one at a time in source order. Re-running a sync creates duplicates.
type Pipeline struct {
	source          services.ItemSource
	sink            services.ItemSink
	sourceName      string
	destinationName string
	logger          *log.Logger
}

func NewPipeline(source services.ItemSource, sink services.ItemSink, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		source:          source,
		sink:            sink,
		sourceName:      providerName(source, services.ProviderPinterest),
		destinationName: providerName(sink, services.ProviderMiro),
		logger:          logger,
	}
}

func providerName(v any, fallback string) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fallback
}

// Sync runs one transfer and returns the ordered per-item outcomes.
//
// Only a failure to fetch the source items ends the run early, wrapping [shared.ErrSourceFetchFailed].
// Per-item failures are recorded in the summary.
func (p *Pipeline) Sync(ctx context.Context, req SyncRequest, progress chan<- ProgressUpdate) (*models.SyncSummary, error) {
	if err := req.validate(p.sourceName, p.destinationName); err != nil {
		return nil, err
	}

	logger := shared.WithLogger(p.logger, "source_board", req.SourceBoardID, "destination_board", req.DestinationBoardID)
	summary := &models.SyncSummary{
		SourceBoardID:      req.SourceBoardID,
		DestinationBoardID: req.DestinationBoardID,
		Outcomes:           []models.Outcome{},
		StartedAt:          time.Now(),
	}

	sendProgress(progress, fetchItemsUpdate(req.SourceBoardID))

	items, err := p.source.ListItems(ctx, req.SourceToken, req.SourceBoardID)
	if err != nil {
		logger.Error("failed to fetch source items", "error", err)
		return nil, fmt.Errorf("%w: %w", shared.ErrSourceFetchFailed, err)
	}

	total := len(items)
	sendProgress(progress, foundItemsUpdate(total))
	logger.Info("sync started", "items", total)

	for i, item := range items {
		outcome := p.transfer(ctx, req, item)
		summary.Add(outcome)
		sendProgress(progress, transferUpdate(i+1, total, outcome))

		if outcome.Status == models.OutcomeFailed {
			logger.Warn("item failed", "item", item.ExternalID, "reason", outcome.Reason)
		} else {
			logger.Debug("item done", "item", item.ExternalID, "status", outcome.Status)
		}
	}

	summary.FinishedAt = time.Now()
	sendProgress(progress, completeUpdate(summary))
	logger.Info("sync finished", "created", summary.Created, "skipped", summary.Skipped, "failed", summary.Failed)

	return summary, nil
}

func (p *Pipeline) transfer(ctx context.Context, req SyncRequest, item models.SourceItem) models.Outcome {
	outcome := models.Outcome{ItemID: item.ExternalID, Title: ItemTitle(item)}

	image, ok := SelectImage(item)
	if !ok {
		outcome.Status = models.OutcomeSkippedNoImage
		outcome.Reason = "no usable image"
		return outcome
	}
	outcome.ImageURL = image.URL

	id, err := p.sink.CreateImage(ctx, req.DestinationToken, req.DestinationBoardID, image.URL, outcome.Title)
	if err == nil && id == "" {
		err = fmt.Errorf("%w: no item id returned", shared.ErrMalformedResponse)
	}
	if err != nil {
		outcome.Status = models.OutcomeFailed
		outcome.Reason = FailureReason(err)
		outcome.Err = err
		return outcome
	}

	outcome.Status = models.OutcomeCreated
	outcome.DestinationItemID = id
	return outcome
}

// SelectImage returns the highest priority candidate from [ImageVariants] that has a URL.
func SelectImage(item models.SourceItem) (models.ImageCandidate, bool) {
	for _, variant := range ImageVariants {
		for _, c := range item.Images {
			if c.Variant == variant && c.URL != "" {
				return c, true
			}
		}
	}
	return models.ImageCandidate{}, false
}

// ItemTitle returns the item title or [UntitledPlaceholder].
func ItemTitle(item models.SourceItem) string {
	if item.Title == "" {
		return UntitledPlaceholder
	}
	return item.Title
}

// FailureReason names the error class of a failed write, with the provider detail when present.
func FailureReason(err error) string {
	kind := ErrorKind(err)

	var pe *services.ProviderError
	if errors.As(err, &pe) {
		switch {
		case pe.StatusCode != 0 && pe.Message != "":
			return fmt.Sprintf("%s: HTTP %d: %s", kind, pe.StatusCode, pe.Message)
		case pe.StatusCode != 0:
			return fmt.Sprintf("%s: HTTP %d", kind, pe.StatusCode)
		case pe.Message != "":
			return fmt.Sprintf("%s: %s", kind, pe.Message)
		}
	}
	return kind
}

// ErrorKind maps err onto its taxonomy name.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, shared.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, shared.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, shared.ErrForbidden):
		return "forbidden"
	case errors.Is(err, shared.ErrMalformedRequest):
		return "malformed_request"
	case errors.Is(err, shared.ErrResourceNotFound):
		return "resource_not_found"
	case errors.Is(err, shared.ErrProviderUnreachable):
		return "provider_unreachable"
	case errors.Is(err, shared.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, shared.ErrProviderError):
		return "provider_error"
	case errors.Is(err, shared.ErrAuthExchangeFailed):
		return "auth_exchange_failed"
	case errors.Is(err, shared.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, shared.ErrSourceFetchFailed):
		return "source_fetch_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return err.Error()
	}
}
