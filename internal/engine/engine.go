// Package engine wires extraction, classification and resolution into the
// single message-handling entry point.
package engine

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/abubakar-xyz/ChopWise-Improved/internal/compose"
	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/extract"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/intent"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/lexicon"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/resolve"
)

// Resolver answers a classified, entity-tagged request.
type Resolver interface {
	Resolve(ctx context.Context, req resolve.Request) (*domain.Answer, error)
}

// Engine answers chat messages about food prices. It never lets bad input
// escape as a failure: every resolution error becomes an explanatory reply
// and unexpected panics become a generic apology.
type Engine struct {
	lex        *lexicon.Lexicon
	extractor  *extract.Extractor
	classifier *intent.Classifier
	resolver   Resolver
	composer   *compose.Composer
}

func New(lex *lexicon.Lexicon, extractor *extract.Extractor, classifier *intent.Classifier, resolver Resolver, composer *compose.Composer) *Engine {
	return &Engine{
		lex:        lex,
		extractor:  extractor,
		classifier: classifier,
		resolver:   resolver,
		composer:   composer,
	}
}

// HandleMessage resolves a message into a structured answer or a resolution
// error. Exactly one of the two return values is non-nil.
func (e *Engine) HandleMessage(ctx context.Context, text string) (answer *domain.Answer, rerr *domain.ResolutionError) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[Engine] Recovered from panic: %v", rec)
			answer = nil
			rerr = &domain.ResolutionError{Code: domain.ErrInternal}
		}
	}()

	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" || strings.Contains(lowered, "help") || strings.Contains(lowered, "usage") {
		return &domain.Answer{Kind: domain.AnswerHelp}, nil
	}

	ents := e.extractor.Extract(text)

	// Foods are mandatory; without one there is nothing to resolve.
	if len(ents.Foods) == 0 {
		return nil, &domain.ResolutionError{
			Code:        domain.ErrFoodNotRecognized,
			Suggestions: ents.Suggestions,
		}
	}

	if ents.WantsState {
		return nil, &domain.ResolutionError{
			Code:        domain.ErrRegionNotRecognized,
			Suggestions: e.extractor.Suggest("state", text, 3),
		}
	}
	if ents.WantsLGA {
		return nil, &domain.ResolutionError{
			Code:        domain.ErrSubRegionNotRecognized,
			Suggestions: e.extractor.Suggest("lga", text, 3),
		}
	}
	if ents.WantsOutlet {
		return nil, &domain.ResolutionError{
			Code:        domain.ErrOutletNotRecognized,
			Suggestions: e.extractor.Suggest("outlet", text, 3),
		}
	}

	detected, confidence := e.classifier.Classify(text)
	log.Printf("[Engine] Intent %s (%.2f) foods=%v state=%q", detected, confidence, ents.Foods, ents.State)

	result, err := e.resolver.Resolve(ctx, resolve.Request{Text: text, Intent: detected, Entities: ents})
	if err != nil {
		var resErr *domain.ResolutionError
		if errors.As(err, &resErr) {
			return nil, resErr
		}
		log.Printf("[Engine] Resolution failed: %v", err)
		return nil, &domain.ResolutionError{Code: domain.ErrInternal}
	}
	return result, nil
}

// Reply handles a message end-to-end and returns the composed reply text.
func (e *Engine) Reply(ctx context.Context, text string) string {
	answer, rerr := e.HandleMessage(ctx, text)
	if rerr != nil {
		return e.composer.ComposeError(rerr)
	}
	return e.composer.Compose(answer)
}

// DescribeCatalog exposes the queryable universe for autocomplete and help.
func (e *Engine) DescribeCatalog() domain.Catalog {
	return e.lex.Catalog()
}
